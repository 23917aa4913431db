package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"career-quiz/internal/domain"
	"career-quiz/internal/repository/models"
)

const professionColumns = `id "id",
		code "code",
		title "title",
		ml_class_code "ml_class_code"`

// sqlxProfessionRepository implements domain.ProfessionRepository using sqlx.
type sqlxProfessionRepository struct {
	db DBTX
}

// NewSQLXProfessionRepository creates a new profession repository.
func NewSQLXProfessionRepository(db DBTX) domain.ProfessionRepository {
	return &sqlxProfessionRepository{db: db}
}

func (r *sqlxProfessionRepository) FindByID(ctx context.Context, id int64) (*domain.Profession, error) {
	query := `SELECT ` + professionColumns + `
	FROM professions
	WHERE id = :1`
	return r.getOne(ctx, query, id)
}

func (r *sqlxProfessionRepository) FindByMLClassCode(ctx context.Context, code string) (*domain.Profession, error) {
	query := `SELECT ` + professionColumns + `
	FROM professions
	WHERE ml_class_code = :1
	ORDER BY id
	FETCH FIRST 1 ROWS ONLY`
	return r.getOne(ctx, query, code)
}

func (r *sqlxProfessionRepository) FindAll(ctx context.Context) ([]domain.Profession, error) {
	query := `SELECT ` + professionColumns + `
	FROM professions
	ORDER BY id`

	var rows []models.Profession
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get professions: %w", err)
	}
	professions := make([]domain.Profession, 0, len(rows))
	for i := range rows {
		professions = append(professions, toDomainProfession(&rows[i]))
	}
	return professions, nil
}

func (r *sqlxProfessionRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Profession, error) {
	var row models.Profession
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profession by %v: %w", arg, err)
	}
	profession := toDomainProfession(&row)
	return &profession, nil
}
