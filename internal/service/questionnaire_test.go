package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailygoals/dailygoals/internal/model"
	"github.com/dailygoals/dailygoals/internal/repository"
)

func TestQuestionnaireSubmit(t *testing.T) {
	t.Run("stores a valid full answer set", func(t *testing.T) {
		database := newTestDB(t)
		user := registerTestUser(t, database, "alice@example.com")
		svc := NewQuestionnaireService(repository.NewResponseRepository(database))

		require.NoError(t, svc.Submit(user.ID, testAnswers()))

		completed, err := svc.HasCompleted(user.ID)
		require.NoError(t, err)
		assert.True(t, completed)

		profile, err := svc.Profile(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Software Engineer", profile["occupation"])
		assert.Equal(t, "2", profile["free_time"])
		assert.Equal(t, "Health, Learning", profile["categories"])
		assert.Equal(t, "6", profile["stress"])
	})

	t.Run("missing answer is rejected", func(t *testing.T) {
		database := newTestDB(t)
		user := registerTestUser(t, database, "alice@example.com")
		svc := NewQuestionnaireService(repository.NewResponseRepository(database))

		answers := testAnswers()
		delete(answers, "motivation")

		err := svc.Submit(user.ID, answers)
		assert.ErrorIs(t, err, ErrMissingAnswers)
		assert.Contains(t, err.Error(), "motivation")

		completed, err := svc.HasCompleted(user.ID)
		require.NoError(t, err)
		assert.False(t, completed)
	})

	t.Run("invalid answers are rejected with the question named", func(t *testing.T) {
		database := newTestDB(t)
		user := registerTestUser(t, database, "alice@example.com")
		svc := NewQuestionnaireService(repository.NewResponseRepository(database))

		cases := map[string]any{
			"age_range":  "12-17",
			"stress":     float64(11),
			"categories": []any{"Health", "Finance"},
			"challenge":  "",
			"free_time":  "lots",
		}

		for key, bad := range cases {
			answers := testAnswers()
			answers[key] = bad

			err := svc.Submit(user.ID, answers)
			assert.ErrorIs(t, err, ErrInvalidAnswer, "key %s", key)
		}
	})

	t.Run("list answers with non-string items are rejected", func(t *testing.T) {
		database := newTestDB(t)
		user := registerTestUser(t, database, "alice@example.com")
		svc := NewQuestionnaireService(repository.NewResponseRepository(database))

		answers := testAnswers()
		answers["categories"] = []any{"Health", float64(3)}

		assert.ErrorIs(t, svc.Submit(user.ID, answers), ErrInvalidAnswer)
	})

	t.Run("resubmit replaces all answers", func(t *testing.T) {
		database := newTestDB(t)
		user := registerTestUser(t, database, "alice@example.com")
		svc := NewQuestionnaireService(repository.NewResponseRepository(database))

		require.NoError(t, svc.Submit(user.ID, testAnswers()))

		answers := testAnswers()
		answers["occupation"] = "Nurse"
		answers["stress"] = float64(3)
		require.NoError(t, svc.Submit(user.ID, answers))

		profile, err := svc.Profile(user.ID)
		require.NoError(t, err)
		assert.Len(t, profile, len(model.Questions))
		assert.Equal(t, "Nurse", profile["occupation"])
		assert.Equal(t, "3", profile["stress"])
	})
}

func TestQuestionnaireQuestions(t *testing.T) {
	svc := NewQuestionnaireService(nil)

	questions := svc.Questions()
	require.Len(t, questions, 10)
	for i, q := range questions {
		assert.Equal(t, i+1, q.Number)
		assert.NotEmpty(t, q.Key)
		assert.NotEmpty(t, q.Text)
	}
}
