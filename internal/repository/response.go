package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dailygoals/dailygoals/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ResponseRepository interface {
	Replace(userID string, responses []*model.Response) error
	ByUserID(userID string) ([]*model.Response, error)
	ProfileByUserID(userID string) (map[string]string, error)
	HasCompleted(userID string) (bool, error)
}

type responseRepository struct {
	db *sqlx.DB
}

func NewResponseRepository(db *sqlx.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// Replace deletes all prior answers for the user and inserts the new set in
// one transaction. Retaking the questionnaire overwrites, never versions.
func (r *responseRepository) Replace(userID string, responses []*model.Response) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM questionnaire_responses WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	query := `INSERT INTO questionnaire_responses
	          (id, user_id, question_number, question_key, question_text, response_value, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	for _, resp := range responses {
		if resp.ID == "" {
			resp.ID = uuid.New().String()
		}
		if resp.SubmittedAt.IsZero() {
			resp.SubmittedAt = now
		}
		_, err = tx.Exec(query,
			resp.ID,
			userID,
			resp.QuestionNumber,
			resp.QuestionKey,
			resp.QuestionText,
			resp.ResponseValue,
			resp.SubmittedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *responseRepository) ByUserID(userID string) ([]*model.Response, error) {
	var responses []*model.Response
	query := `SELECT * FROM questionnaire_responses WHERE user_id = $1 ORDER BY question_number ASC`

	err := r.db.Select(&responses, query, userID)
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// ProfileByUserID returns the stored answers as a flat key -> value map,
// the shape the prompt builder consumes. Returns ErrProfileNotFound when
// the user has no stored answers at all.
func (r *responseRepository) ProfileByUserID(userID string) (map[string]string, error) {
	responses, err := r.ByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, ErrProfileNotFound
	}

	profile := make(map[string]string, len(responses))
	for _, resp := range responses {
		profile[resp.QuestionKey] = resp.ResponseValue
	}

	return profile, nil
}

func (r *responseRepository) HasCompleted(userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM questionnaire_responses WHERE user_id = $1`

	err := r.db.QueryRow(query, userID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count >= len(model.Questions), nil
}
