package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/dailygoals/dailygoals/internal/db"
	"github.com/dailygoals/dailygoals/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func createTestUserModel(email string) *model.User {
	return &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "$2a$10$test",
		CreatedAt:    time.Now(),
	}
}

func createTestUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()

	user := createTestUserModel(email)
	require.NoError(t, NewUserRepository(database).Create(user))
	return user
}
