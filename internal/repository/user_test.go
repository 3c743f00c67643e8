package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	t.Run("Create and lookup by id and email", func(t *testing.T) {
		database := newTestDB(t)
		repo := NewUserRepository(database)
		user := createTestUser(t, database, "alice@example.com")

		byID, err := repo.ByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", byID.Email)

		byEmail, err := repo.ByEmail("alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate email returns ErrDuplicateEmail", func(t *testing.T) {
		database := newTestDB(t)
		createTestUser(t, database, "alice@example.com")

		dup := createTestUserModel("alice@example.com")
		err := NewUserRepository(database).Create(dup)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("unknown user returns ErrUserNotFound", func(t *testing.T) {
		database := newTestDB(t)
		repo := NewUserRepository(database)

		_, err := repo.ByID("missing")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.ByEmail("nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)

		assert.ErrorIs(t, repo.Delete("missing"), ErrUserNotFound)
	})

	t.Run("Delete removes the user", func(t *testing.T) {
		database := newTestDB(t)
		repo := NewUserRepository(database)
		user := createTestUser(t, database, "alice@example.com")

		require.NoError(t, repo.Delete(user.ID))

		_, err := repo.ByID(user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
