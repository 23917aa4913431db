package repository

import (
	"context"
	"fmt"

	"career-quiz/internal/domain"
	"career-quiz/internal/repository/models"
)

// sqlxAnswerRepository implements domain.AnswerRepository using sqlx.
type sqlxAnswerRepository struct {
	db DBTX
}

// NewSQLXAnswerRepository creates a new instance of sqlxAnswerRepository.
func NewSQLXAnswerRepository(db DBTX) domain.AnswerRepository {
	return &sqlxAnswerRepository{db: db}
}

// FindValuesByAttemptID returns the Likert value of each selected option, in question order.
func (r *sqlxAnswerRepository) FindValuesByAttemptID(ctx context.Context, attemptID int64) ([]int, error) {
	query := `SELECT o.value "option_value"
	FROM answers a
	JOIN options o ON o.id = a.option_id
	JOIN questions q ON q.id = o.question_id
	WHERE a.attempt_id = :1
	ORDER BY q.ord, a.id`

	values := []int{}
	if err := r.db.SelectContext(ctx, &values, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get answer values for attempt %d: %w", attemptID, err)
	}
	return values, nil
}

// FindByAttemptID returns the selected options with their question text, in question order.
func (r *sqlxAnswerRepository) FindByAttemptID(ctx context.Context, attemptID int64) ([]domain.AnswerDetail, error) {
	query := `SELECT
		q.id "question_id",
		q.ord "question_order",
		q.text "question_text",
		o.id "option_id",
		o.label "option_label",
		o.value "option_value"
	FROM answers a
	JOIN options o ON o.id = a.option_id
	JOIN questions q ON q.id = o.question_id
	WHERE a.attempt_id = :1
	ORDER BY q.ord, o.ord`

	var rows []models.AnswerDetail
	if err := r.db.SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get answers for attempt %d: %w", attemptID, err)
	}

	answers := make([]domain.AnswerDetail, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, domain.AnswerDetail{
			QuestionID:    row.QuestionID,
			QuestionOrder: row.QuestionOrder,
			QuestionText:  row.QuestionText,
			OptionID:      row.OptionID,
			OptionLabel:   row.OptionLabel,
			OptionValue:   row.OptionValue,
		})
	}
	return answers, nil
}
