package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dailygoals/dailygoals/internal/ctxkeys"
	"github.com/dailygoals/dailygoals/internal/model"
	"github.com/dailygoals/dailygoals/internal/service"
)

type AuthHandler struct {
	authService          *service.AuthService
	questionnaireService *service.QuestionnaireService
}

func NewAuthHandler(authService *service.AuthService, questionnaireService *service.QuestionnaireService) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		questionnaireService: questionnaireService,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, "an account with this email already exists")
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "please provide a valid email address")
		default:
			// Password validation errors carry their own user-facing text
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.issueSession(w, user.ID, user.Email)
	respondMessage(w, http.StatusCreated, "account created", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		slog.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}

	h.issueSession(w, user.ID, user.Email)
	respondMessage(w, http.StatusOK, "signed in", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respondMessage(w, http.StatusOK, "signed out", nil)
}

// Me returns the current user plus questionnaire completeness, the minimum
// a client needs to decide between questionnaire and dashboard.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	completed, err := h.questionnaireService.HasCompleted(user.ID)
	if err != nil {
		slog.Error("failed to check questionnaire status", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load account")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"user_id":                 user.ID,
		"email":                   user.Email,
		"questionnaire_completed": completed,
	})
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, userID, email string) {
	token, err := h.authService.GenerateJWT(&model.User{ID: userID, Email: email})
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", userID)
		return
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))
}
