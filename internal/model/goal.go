package model

import (
	"time"
)

const (
	CategoryHealth        = "Health"
	CategoryCareer        = "Career"
	CategoryLearning      = "Learning"
	CategoryRelationships = "Relationships"
	CategoryHobbies       = "Hobbies"
)

// GoalCategories is the closed category set the generation client accepts.
var GoalCategories = []string{
	CategoryHealth,
	CategoryCareer,
	CategoryLearning,
	CategoryRelationships,
	CategoryHobbies,
}

const (
	GoalTitleMaxLen       = 100
	GoalDescriptionMaxLen = 300
	GoalsPerDay           = 3
)

// Goal is one persisted daily goal. Goals are created in batches of
// GoalsPerDay by the generation pipeline and are never user-edited;
// the only user-driven transition is Completed false -> true.
type Goal struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	Day         string     `db:"day"` // calendar day, YYYY-MM-DD
	Position    int        `db:"position"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Category    string     `db:"category"`
	Completed   bool       `db:"completed"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Day formats t as the calendar-day key used by the daily goal ledger.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// ValidCategory reports whether c is one of the five known categories.
func ValidCategory(c string) bool {
	for _, known := range GoalCategories {
		if c == known {
			return true
		}
	}
	return false
}
