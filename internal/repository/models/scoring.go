package models

import (
	"database/sql"
	"time"
)

// Trait maps a row of the traits table.
type Trait struct {
	ID              int64          `db:"id"`
	Code            string         `db:"code"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	BipolarPairCode sql.NullString `db:"bipolar_pair_code"`
}

// TraitWeightSum is a trait row with an aggregated option weight.
type TraitWeightSum struct {
	Trait
	WeightSum float64 `db:"weight_sum"`
}

// Profession maps a row of the professions table.
type Profession struct {
	ID          int64          `db:"id"`
	Code        string         `db:"code"`
	Title       string         `db:"title"`
	MLClassCode sql.NullString `db:"ml_class_code"`
}

// AnswerDetail is an answer joined with its option and question.
type AnswerDetail struct {
	QuestionID    int64  `db:"question_id"`
	QuestionOrder int    `db:"question_order"`
	QuestionText  string `db:"question_text"`
	OptionID      int64  `db:"option_id"`
	OptionLabel   string `db:"option_label"`
	OptionValue   int    `db:"option_value"`
}

// Attempt is an attempts row joined with its quiz version's processing mode.
type Attempt struct {
	ID             int64          `db:"id"`
	QuizVersionID  int64          `db:"quiz_version_id"`
	UserID         sql.NullInt64  `db:"user_id"`
	GuestToken     sql.NullString `db:"guest_token"`
	Locale         sql.NullString `db:"locale"`
	ProcessingMode string         `db:"processing_mode"`
	StartedAt      time.Time      `db:"started_at"`
	SubmittedAt    sql.NullTime   `db:"submitted_at"`
}
