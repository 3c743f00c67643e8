package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dailygoals/dailygoals/internal/model"
	"github.com/dailygoals/dailygoals/internal/repository"
	"github.com/dailygoals/dailygoals/internal/validation"
)

var (
	ErrMissingAnswers = errors.New("all questions must be answered")
	ErrInvalidAnswer  = errors.New("invalid answer")
)

type QuestionnaireService struct {
	responseRepo repository.ResponseRepository
}

func NewQuestionnaireService(responseRepo repository.ResponseRepository) *QuestionnaireService {
	return &QuestionnaireService{
		responseRepo: responseRepo,
	}
}

// Questions returns the fixed question set in order.
func (s *QuestionnaireService) Questions() []model.Question {
	return model.Questions
}

// Submit validates and stores a full answer set keyed by question key.
// Answers may be strings, numbers, or lists of strings; multi-valued answers
// are flattened to a comma-joined string before storage. A submit fully
// replaces any prior answers (retake semantics, no versioning).
func (s *QuestionnaireService) Submit(userID string, answers map[string]any) error {
	responses := make([]*model.Response, 0, len(model.Questions))

	for _, q := range model.Questions {
		raw, ok := answers[q.Key]
		if !ok {
			return fmt.Errorf("%w: missing answer for %q", ErrMissingAnswers, q.Key)
		}

		value, err := flattenAnswer(raw)
		if err != nil {
			return fmt.Errorf("%w for %q: %s", ErrInvalidAnswer, q.Key, err)
		}

		err = validation.ValidateAnswer(q, value)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAnswer, err)
		}

		responses = append(responses, &model.Response{
			UserID:         userID,
			QuestionNumber: q.Number,
			QuestionKey:    q.Key,
			QuestionText:   q.Text,
			ResponseValue:  strings.TrimSpace(value),
		})
	}

	return s.responseRepo.Replace(userID, responses)
}

// Profile returns the stored answers as the flat key -> value map consumed
// by the prompt builder.
func (s *QuestionnaireService) Profile(userID string) (map[string]string, error) {
	return s.responseRepo.ProfileByUserID(userID)
}

// HasCompleted reports whether the user has a full answer set stored.
func (s *QuestionnaireService) HasCompleted(userID string) (bool, error) {
	return s.responseRepo.HasCompleted(userID)
}

// flattenAnswer normalizes a decoded JSON answer value to its stored string
// form: lists are comma-joined, numbers rendered without a fraction when
// integral.
func flattenAnswer(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", errors.New("list answers must contain only strings")
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", errors.New("unsupported answer type")
	}
}
