package handler

import (
	"net/http"
)

type HomeHandler struct {
	appName string
}

func NewHomeHandler(appName string) *HomeHandler {
	return &HomeHandler{
		appName: appName,
	}
}

// Healthz reports process liveness for load balancers and uptime checks.
func (h *HomeHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"app":    h.appName,
		"status": "ok",
	})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "not found")
}
