package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dailygoals/dailygoals/internal/model"
)

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrAlreadyGenerated = errors.New("goals already generated for this day")
)

type GoalRepository interface {
	CanGenerate(userID, day string) (bool, error)
	SaveBatch(userID, day string, goals []*model.Goal) error
	GoalsForDay(userID, day string) ([]*model.Goal, error)
	MarkComplete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// CanGenerate is a cheap read used to short-circuit blocked requests before
// any external call is made. It is advisory only: the authoritative guard is
// the unique (user_id, day) reservation taken inside SaveBatch.
func (r *goalRepository) CanGenerate(userID, day string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM goal_generations WHERE user_id = $1 AND day = $2`

	err := r.db.QueryRow(query, userID, day).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == 0, nil
}

// SaveBatch persists a generated batch in a single transaction: it takes the
// (user_id, day) reservation, deletes any same-day goals, and inserts the
// new batch. Two concurrent generations race on the reservation insert and
// only one commits; the loser gets ErrAlreadyGenerated. Delete-then-insert
// keeps replace semantics: completion state on a replaced batch is discarded.
func (r *goalRepository) SaveBatch(userID, day string, goals []*model.Goal) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO goal_generations (id, user_id, day, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), userID, day, time.Now())
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrAlreadyGenerated
		}
		return err
	}

	_, err = tx.Exec(`DELETE FROM daily_goals WHERE user_id = $1 AND day = $2`, userID, day)
	if err != nil {
		return err
	}

	query := `INSERT INTO daily_goals (id, user_id, day, position, title, description, category, completed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	for i, goal := range goals {
		if goal.ID == "" {
			goal.ID = uuid.New().String()
		}
		goal.UserID = userID
		goal.Day = day
		goal.Position = i
		if goal.CreatedAt.IsZero() {
			goal.CreatedAt = now
		}
		_, err = tx.Exec(query,
			goal.ID,
			goal.UserID,
			goal.Day,
			goal.Position,
			goal.Title,
			goal.Description,
			goal.Category,
			goal.Completed,
			goal.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *goalRepository) GoalsForDay(userID, day string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM daily_goals WHERE user_id = $1 AND day = $2 ORDER BY position ASC`

	err := r.db.Select(&goals, query, userID, day)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// MarkComplete sets the one-way completion flag. The user_id predicate
// doubles as the ownership check.
func (r *goalRepository) MarkComplete(userID, goalID string) error {
	query := `UPDATE daily_goals
	          SET completed = TRUE, completed_at = $1
	          WHERE id = $2 AND user_id = $3 AND completed = FALSE`

	result, err := r.db.Exec(query, time.Now(), goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		// Distinguish "already completed" (a no-op) from "not yours / missing".
		var count int
		err = r.db.QueryRow(`SELECT COUNT(*) FROM daily_goals WHERE id = $1 AND user_id = $2`, goalID, userID).Scan(&count)
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrGoalNotFound
		}
	}

	return nil
}
