package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"career-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// ErrDirtyDatabase is returned when a previous migration failed halfway.
var ErrDirtyDatabase = errors.New("database is dirty; fix the schema and reset schema_migrations")

const createVersionTable = `CREATE TABLE schema_migrations (
	version NUMBER(19) NOT NULL,
	dirty   NUMBER(1) NOT NULL
)`

// Migrator applies the embedded migrations. Versions and statements are read
// through golang-migrate's iofs source; Oracle has no golang-migrate database
// driver, so versions are tracked in schema_migrations directly.
type Migrator struct {
	db     *sqlx.DB
	source source.Driver
}

// NewMigrator creates a Migrator over the embedded migration files.
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return newMigrator(db, migrationFiles, "migrations")
}

func newMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	return &Migrator{db: db, source: src}, nil
}

// Close releases the migration source.
func (m *Migrator) Close() error {
	return m.source.Close()
}

// Version returns the applied version, 0 when nothing was applied.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, false, err
	}
	var row struct {
		Version int64 `db:"version"`
		Dirty   int   `db:"dirty"`
	}
	err := m.db.GetContext(ctx, &row, `SELECT version "version", dirty "dirty" FROM schema_migrations FETCH FIRST 1 ROWS ONLY`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return uint(row.Version), row.Dirty == 1, nil
}

// Up applies every migration newer than the current version.
func (m *Migrator) Up(ctx context.Context) error {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return ErrDirtyDatabase
	}

	next, err := m.nextVersion(current)
	for err == nil {
		if err := m.apply(ctx, next, source.Up); err != nil {
			return err
		}
		next, err = m.source.Next(next)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to list migrations: %w", err)
}

// Down reverts the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return ErrDirtyDatabase
	}
	if current == 0 {
		logger.Get().Info("No migrations to revert")
		return nil
	}
	return m.apply(ctx, current, source.Down)
}

func (m *Migrator) nextVersion(current uint) (uint, error) {
	if current == 0 {
		return m.source.First()
	}
	return m.source.Next(current)
}

func (m *Migrator) apply(ctx context.Context, version uint, direction source.Direction) error {
	var (
		body       io.ReadCloser
		identifier string
		err        error
	)
	if direction == source.Up {
		body, identifier, err = m.source.ReadUp(version)
	} else {
		body, identifier, err = m.source.ReadDown(version)
	}
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}

	if err := m.setVersion(ctx, version, true); err != nil {
		return err
	}
	for _, stmt := range SplitStatements(string(content)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", version, identifier, err)
		}
	}

	target := version
	if direction == source.Down {
		prev, err := m.source.Prev(version)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			target = 0
		case err != nil:
			return fmt.Errorf("failed to find migration before %d: %w", version, err)
		default:
			target = prev
		}
	}
	if err := m.setVersion(ctx, target, false); err != nil {
		return err
	}

	logger.Get().Info("Applied migration",
		zap.Uint("version", version),
		zap.String("name", identifier),
		zap.String("direction", string(direction)))
	return nil
}

func (m *Migrator) setVersion(ctx context.Context, version uint, dirty bool) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin version update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if version > 0 || dirty {
		dirtyFlag := 0
		if dirty {
			dirtyFlag = 1
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (:1, :2)`, int64(version), dirtyFlag); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", version, err)
		}
	}
	return tx.Commit()
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var count int
	if err := m.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`); err != nil {
		return fmt.Errorf("failed to look up schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, createVersionTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// SplitStatements splits a migration file on lines holding a single "/".
// Oracle rejects multiple statements per call and trailing semicolons.
func SplitStatements(content string) []string {
	var stmts []string
	var current strings.Builder
	flush := func() {
		stmt := strings.TrimSpace(current.String())
		stmt = strings.TrimSuffix(stmt, ";")
		if strings.TrimSpace(stmt) != "" {
			stmts = append(stmts, strings.TrimSpace(stmt))
		}
		current.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "/" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	flush()
	return stmts
}
