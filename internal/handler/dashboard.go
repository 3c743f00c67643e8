package handler

import (
	"log/slog"
	"net/http"

	"github.com/dailygoals/dailygoals/internal/ctxkeys"
	"github.com/dailygoals/dailygoals/internal/service"
)

type DashboardHandler struct {
	goalService *service.GoalService
}

func NewDashboardHandler(goalService *service.GoalService) *DashboardHandler {
	return &DashboardHandler{
		goalService: goalService,
	}
}

// Dashboard returns today's goals, completion progress, and whether the
// daily policy still allows a generation.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.TodayGoals(user.ID)
	if err != nil {
		slog.Error("failed to load dashboard goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	canGenerate, err := h.goalService.CanGenerateToday(user.ID)
	if err != nil {
		slog.Error("failed to check daily limit", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	progress := service.Progress{Total: len(goals)}
	for _, goal := range goals {
		if goal.Completed {
			progress.Completed++
		}
	}

	respond(w, http.StatusOK, map[string]any{
		"goals":        goalPayloads(goals),
		"progress":     progress,
		"can_generate": canGenerate,
	})
}
