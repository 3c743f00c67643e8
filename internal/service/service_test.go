package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/dailygoals/dailygoals/internal/db"
	"github.com/dailygoals/dailygoals/internal/model"
	"github.com/dailygoals/dailygoals/internal/repository"
)

// testPassword must clear ValidatePassword, blocklist included, so helpers
// can register users without tripping the validator.
const testPassword = "a-long-valid-passphrase"

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func newTestAuthService(database *sqlx.DB) *AuthService {
	emailService := NewEmailService("", "test@example.com", "http://localhost:8090", "Daily Goals", true)
	return NewAuthService(repository.NewUserRepository(database), emailService, "test-secret", false, 168*time.Hour)
}

func registerTestUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()

	user, err := newTestAuthService(database).Register(email, testPassword)
	require.NoError(t, err)
	return user
}

// testAnswers is a valid full answer set in the decoded-JSON shapes the
// submit endpoint produces.
func testAnswers() map[string]any {
	return map[string]any{
		"age_range":       "25-34",
		"occupation":      "Software Engineer",
		"health_priority": "Very Important",
		"free_time":       float64(2),
		"challenge":       "Too many meetings, not enough focus time",
		"categories":      []any{"Health", "Learning"},
		"schedule":        "Morning",
		"stress":          float64(6),
		"difficulty":      "Medium",
		"motivation":      "Seeing steady progress",
	}
}
