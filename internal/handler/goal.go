package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dailygoals/dailygoals/internal/ctxkeys"
	"github.com/dailygoals/dailygoals/internal/llm"
	"github.com/dailygoals/dailygoals/internal/model"
	"github.com/dailygoals/dailygoals/internal/repository"
	"github.com/dailygoals/dailygoals/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalPayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func goalPayloads(goals []*model.Goal) []goalPayload {
	payload := make([]goalPayload, 0, len(goals))
	for _, g := range goals {
		payload = append(payload, goalPayload{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Category:    g.Category,
			Completed:   g.Completed,
			CompletedAt: g.CompletedAt,
		})
	}
	return payload
}

// Generate runs the daily generation pipeline for the current user.
func (h *GoalHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Generate(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDailyLimitReached):
			respondError(w, http.StatusConflict, "You can only generate goals once per day. Try again tomorrow!")
		case errors.Is(err, service.ErrProfileIncomplete):
			respondError(w, http.StatusPreconditionFailed, "Please complete the questionnaire first to generate personalized goals.")
		case errors.Is(err, llm.ErrParse), errors.Is(err, llm.ErrMalformed):
			slog.Error("generation returned unusable output", "error", err, "user_id", user.ID)
			respondError(w, http.StatusBadGateway, "The generated goals could not be understood. Please try again.")
		case errors.Is(err, llm.ErrGeneration):
			slog.Error("generation call failed", "error", err, "user_id", user.ID)
			respondError(w, http.StatusBadGateway, "Goal generation is temporarily unavailable. Please try again.")
		default:
			slog.Error("failed to persist generated goals", "error", err, "user_id", user.ID)
			respondError(w, http.StatusInternalServerError, "Failed to save your goals. Please try again.")
		}
		return
	}

	respondMessage(w, http.StatusCreated, "Daily goals generated successfully!", map[string]any{
		"goals": goalPayloads(goals),
	})
}

// Today lists the goals generated for the current calendar day.
func (h *GoalHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.TodayGoals(user.ID)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load today's goals")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"goals": goalPayloads(goals),
	})
}

// Complete sets the one-way completion flag on a single goal.
func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Complete(user.ID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.Error("failed to complete goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	progress, err := h.goalService.TodayProgress(user.ID)
	if err != nil {
		slog.Error("failed to load progress", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	respondMessage(w, http.StatusOK, "Goal marked as completed", map[string]any{
		"progress": progress,
	})
}
