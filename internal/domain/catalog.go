package domain

import (
	"context"
	"time"
)

// Profession is a career the platform can recommend.
type Profession struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	MLClassCode string `json:"ml_class_code,omitempty"`
}

// Attempt is one quiz-taking session. The scoring core only reads it.
type Attempt struct {
	ID             int64
	QuizVersionID  int64
	UserID         *int64
	GuestToken     string
	Locale         string
	ProcessingMode ProcessingMode
	StartedAt      time.Time
	SubmittedAt    *time.Time
}

// AnswerDetail is a selected option with the question context needed for prompts.
type AnswerDetail struct {
	QuestionID    int64
	QuestionOrder int
	QuestionText  string
	OptionID      int64
	OptionLabel   string
	OptionValue   int
}

// TraitWeightSum is an aggregated weight for one trait.
type TraitWeightSum struct {
	Trait Trait
	Sum   float64
}

// AnswerRepository reads an attempt's answers.
type AnswerRepository interface {
	// FindValuesByAttemptID returns the raw Likert values ordered by question order.
	FindValuesByAttemptID(ctx context.Context, attemptID int64) ([]int, error)

	// FindByAttemptID returns answers with question and option labels ordered by question order.
	FindByAttemptID(ctx context.Context, attemptID int64) ([]AnswerDetail, error)
}

// TraitWeightRepository aggregates option→trait weights for an attempt.
type TraitWeightRepository interface {
	// SelectedWeightSums sums, per trait, the weights of the options selected in the attempt.
	SelectedWeightSums(ctx context.Context, attemptID int64) ([]TraitWeightSum, error)

	// MaxWeightSums sums, per trait, the weights of every option belonging to
	// the questions answered in the attempt.
	MaxWeightSums(ctx context.Context, attemptID int64) ([]TraitWeightSum, error)
}

// TraitRepository reads trait reference data.
type TraitRepository interface {
	// FindByCode returns nil, nil when no trait has the given code.
	FindByCode(ctx context.Context, code string) (*Trait, error)
	FindAll(ctx context.Context) ([]Trait, error)
}

// ProfessionRepository reads the profession catalog.
type ProfessionRepository interface {
	// FindByID returns nil, nil when the id is unknown.
	FindByID(ctx context.Context, id int64) (*Profession, error)
	// FindByMLClassCode returns nil, nil when no profession carries the code.
	FindByMLClassCode(ctx context.Context, code string) (*Profession, error)
	FindAll(ctx context.Context) ([]Profession, error)
}

// AttemptRepository reads attempt metadata.
type AttemptRepository interface {
	// FindByID returns nil, nil when the attempt does not exist.
	FindByID(ctx context.Context, attemptID int64) (*Attempt, error)
}
