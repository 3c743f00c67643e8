package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dailygoals/dailygoals/internal/model"
)

var (
	ErrAnswerRequired = errors.New("please provide an answer")
)

// ValidateAnswer checks a normalized (flattened) answer against its
// question's kind and constraints. Multi-valued answers arrive comma-joined.
func ValidateAnswer(q model.Question, value string) error {
	value = strings.TrimSpace(value)

	switch q.Kind {
	case model.QuestionKindSelect:
		if !contains(q.Options, value) {
			return fmt.Errorf("answer to question %d must be one of: %s", q.Number, strings.Join(q.Options, ", "))
		}

	case model.QuestionKindText, model.QuestionKindTextArea:
		if value == "" {
			return ErrAnswerRequired
		}
		if q.MaxChars > 0 && len([]rune(value)) > q.MaxChars {
			return fmt.Errorf("answer to question %d must be at most %d characters", q.Number, q.MaxChars)
		}

	case model.QuestionKindSlider:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("answer to question %d must be a number", q.Number)
		}
		if n < q.Min || n > q.Max {
			return fmt.Errorf("answer to question %d must be between %d and %d", q.Number, q.Min, q.Max)
		}

	case model.QuestionKindMultiSelect:
		if value == "" {
			return errors.New("please select at least one option")
		}
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if !contains(q.Options, part) {
				return fmt.Errorf("answer to question %d contains an unknown option: %s", q.Number, part)
			}
		}

	default:
		return fmt.Errorf("unknown question kind: %s", q.Kind)
	}

	return nil
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
