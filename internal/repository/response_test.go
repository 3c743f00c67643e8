package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailygoals/dailygoals/internal/model"
)

func fullResponseSet(values map[string]string) []*model.Response {
	responses := make([]*model.Response, 0, len(model.Questions))
	for _, q := range model.Questions {
		value, ok := values[q.Key]
		if !ok {
			value = "answer to " + q.Key
		}
		responses = append(responses, &model.Response{
			QuestionNumber: q.Number,
			QuestionKey:    q.Key,
			QuestionText:   q.Text,
			ResponseValue:  value,
		})
	}
	return responses
}

func TestResponseRepository(t *testing.T) {
	t.Run("Replace stores one row per question", func(t *testing.T) {
		database := newTestDB(t)
		user := createTestUser(t, database, "alice@example.com")
		repo := NewResponseRepository(database)

		require.NoError(t, repo.Replace(user.ID, fullResponseSet(nil)))

		responses, err := repo.ByUserID(user.ID)
		require.NoError(t, err)
		require.Len(t, responses, len(model.Questions))
		assert.Equal(t, 1, responses[0].QuestionNumber)
		assert.Equal(t, "age_range", responses[0].QuestionKey)

		completed, err := repo.HasCompleted(user.ID)
		require.NoError(t, err)
		assert.True(t, completed)
	})

	t.Run("Replace overwrites prior answers instead of versioning", func(t *testing.T) {
		database := newTestDB(t)
		user := createTestUser(t, database, "alice@example.com")
		repo := NewResponseRepository(database)

		require.NoError(t, repo.Replace(user.ID, fullResponseSet(map[string]string{"occupation": "Designer"})))
		require.NoError(t, repo.Replace(user.ID, fullResponseSet(map[string]string{"occupation": "Nurse"})))

		profile, err := repo.ProfileByUserID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Nurse", profile["occupation"])

		responses, err := repo.ByUserID(user.ID)
		require.NoError(t, err)
		assert.Len(t, responses, len(model.Questions))
	})

	t.Run("ProfileByUserID maps question keys to values", func(t *testing.T) {
		database := newTestDB(t)
		user := createTestUser(t, database, "alice@example.com")
		repo := NewResponseRepository(database)

		require.NoError(t, repo.Replace(user.ID, fullResponseSet(map[string]string{
			"stress":     "7",
			"categories": "Health, Learning",
		})))

		profile, err := repo.ProfileByUserID(user.ID)
		require.NoError(t, err)
		assert.Len(t, profile, len(model.Questions))
		assert.Equal(t, "7", profile["stress"])
		assert.Equal(t, "Health, Learning", profile["categories"])
	})

	t.Run("ProfileByUserID without answers returns ErrProfileNotFound", func(t *testing.T) {
		database := newTestDB(t)
		user := createTestUser(t, database, "alice@example.com")
		repo := NewResponseRepository(database)

		_, err := repo.ProfileByUserID(user.ID)
		assert.ErrorIs(t, err, ErrProfileNotFound)

		completed, err := repo.HasCompleted(user.ID)
		require.NoError(t, err)
		assert.False(t, completed)
	})
}
