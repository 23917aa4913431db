package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"career-quiz/internal/domain"
	"career-quiz/internal/repository/models"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db DBTX
}

// NewSQLXAttemptRepository creates a new attempt repository.
func NewSQLXAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

// FindByID returns the attempt together with its quiz version's processing mode.
func (r *sqlxAttemptRepository) FindByID(ctx context.Context, attemptID int64) (*domain.Attempt, error) {
	query := `SELECT
		a.id "id",
		a.quiz_version_id "quiz_version_id",
		a.user_id "user_id",
		a.guest_token "guest_token",
		a.locale "locale",
		qv.processing_mode "processing_mode",
		a.started_at "started_at",
		a.submitted_at "submitted_at"
	FROM attempts a
	JOIN quiz_versions qv ON qv.id = a.quiz_version_id
	WHERE a.id = :1`

	var row models.Attempt
	if err := r.db.GetContext(ctx, &row, query, attemptID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt %d: %w", attemptID, err)
	}
	return toDomainAttempt(&row), nil
}
