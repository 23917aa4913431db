package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"career-quiz/internal/domain"
	"career-quiz/internal/repository/models"
)

const traitColumns = `t.id "id",
		t.code "code",
		t.name "name",
		t.description "description",
		t.bipolar_pair_code "bipolar_pair_code"`

const traitGroupBy = `GROUP BY t.id, t.code, t.name, t.description, t.bipolar_pair_code
	ORDER BY t.code`

// sqlxTraitRepository implements domain.TraitRepository and
// domain.TraitWeightRepository using sqlx.
type sqlxTraitRepository struct {
	db DBTX
}

// NewSQLXTraitRepository creates a new trait repository.
func NewSQLXTraitRepository(db DBTX) domain.TraitRepository {
	return &sqlxTraitRepository{db: db}
}

// NewSQLXTraitWeightRepository creates a new trait weight repository.
func NewSQLXTraitWeightRepository(db DBTX) domain.TraitWeightRepository {
	return &sqlxTraitRepository{db: db}
}

// FindByCode looks a trait up by its uppercase code.
func (r *sqlxTraitRepository) FindByCode(ctx context.Context, code string) (*domain.Trait, error) {
	query := `SELECT ` + traitColumns + `
	FROM traits t
	WHERE t.code = :1`

	var row models.Trait
	err := r.db.GetContext(ctx, &row, query, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trait by code %s: %w", code, err)
	}
	trait := toDomainTrait(&row)
	return &trait, nil
}

// FindAll returns every trait ordered by code.
func (r *sqlxTraitRepository) FindAll(ctx context.Context) ([]domain.Trait, error) {
	query := `SELECT ` + traitColumns + `
	FROM traits t
	ORDER BY t.code`

	var rows []models.Trait
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get traits: %w", err)
	}
	traits := make([]domain.Trait, 0, len(rows))
	for i := range rows {
		traits = append(traits, toDomainTrait(&rows[i]))
	}
	return traits, nil
}

// SelectedWeightSums sums the weights of the options selected in the attempt, per trait.
func (r *sqlxTraitRepository) SelectedWeightSums(ctx context.Context, attemptID int64) ([]domain.TraitWeightSum, error) {
	query := `SELECT ` + traitColumns + `,
		SUM(ot.weight) "weight_sum"
	FROM answers a
	JOIN option_traits ot ON ot.option_id = a.option_id
	JOIN traits t ON t.id = ot.trait_id
	WHERE a.attempt_id = :1
	` + traitGroupBy

	var rows []models.TraitWeightSum
	if err := r.db.SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get selected trait weights for attempt %d: %w", attemptID, err)
	}
	return toDomainTraitWeightSums(rows), nil
}

// MaxWeightSums sums, per trait, the weights of all options of the questions
// touched by the attempt, selected or not.
func (r *sqlxTraitRepository) MaxWeightSums(ctx context.Context, attemptID int64) ([]domain.TraitWeightSum, error) {
	query := `SELECT ` + traitColumns + `,
		SUM(ot.weight) "weight_sum"
	FROM options o
	JOIN option_traits ot ON ot.option_id = o.id
	JOIN traits t ON t.id = ot.trait_id
	WHERE o.question_id IN (
		SELECT so.question_id
		FROM answers a
		JOIN options so ON so.id = a.option_id
		WHERE a.attempt_id = :1
	)
	` + traitGroupBy

	var rows []models.TraitWeightSum
	if err := r.db.SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get max trait weights for attempt %d: %w", attemptID, err)
	}
	return toDomainTraitWeightSums(rows), nil
}
