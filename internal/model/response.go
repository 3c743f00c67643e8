package model

import "time"

// Response is one stored questionnaire answer. A user has at most one row
// per question number; retaking the questionnaire replaces the full set.
type Response struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	QuestionNumber int       `db:"question_number"`
	QuestionKey    string    `db:"question_key"`
	QuestionText   string    `db:"question_text"`
	ResponseValue  string    `db:"response_value"`
	SubmittedAt    time.Time `db:"submitted_at"`
}
