package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dailygoals/dailygoals/internal/ctxkeys"
	"github.com/dailygoals/dailygoals/internal/service"
)

type QuestionnaireHandler struct {
	questionnaireService *service.QuestionnaireService
}

func NewQuestionnaireHandler(questionnaireService *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		questionnaireService: questionnaireService,
	}
}

type questionPayload struct {
	Number   int      `json:"number"`
	Key      string   `json:"key"`
	Text     string   `json:"text"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Min      int      `json:"min,omitempty"`
	Max      int      `json:"max,omitempty"`
	MaxChars int      `json:"max_chars,omitempty"`
}

// Questions returns the fixed ten-question set for the client to render.
func (h *QuestionnaireHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions := h.questionnaireService.Questions()

	payload := make([]questionPayload, 0, len(questions))
	for _, q := range questions {
		payload = append(payload, questionPayload{
			Number:   q.Number,
			Key:      q.Key,
			Text:     q.Text,
			Kind:     q.Kind,
			Options:  q.Options,
			Min:      q.Min,
			Max:      q.Max,
			MaxChars: q.MaxChars,
		})
	}

	respond(w, http.StatusOK, map[string]any{"questions": payload})
}

type submitRequest struct {
	Answers map[string]any `json:"answers"`
}

// Submit stores a complete answer set. Submitting again replaces all prior
// answers (retake).
func (h *QuestionnaireHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req submitRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.questionnaireService.Submit(user.ID, req.Answers)
	if err != nil {
		// Validation errors carry their own user-facing text
		if errors.Is(err, service.ErrMissingAnswers) || errors.Is(err, service.ErrInvalidAnswer) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save questionnaire", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to save your answers, please try again")
		return
	}

	respondMessage(w, http.StatusOK, "questionnaire completed", nil)
}
