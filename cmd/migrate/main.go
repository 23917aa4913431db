package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"career-quiz/internal/config"
	"career-quiz/internal/database"
	"career-quiz/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the career-quiz Oracle schema",
	Long: `The migrate command applies the SQL migrations embedded in the binary.

Versions are recorded in the schema_migrations table. A failed migration
leaves the schema marked dirty and blocks further runs until it is fixed.`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
			return m.Up(ctx)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
			return m.Down(ctx)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(context.Context, *database.Migrator) error { return nil })
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall migration timeout")
	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
}

// withMigrator connects, runs fn and logs the resulting schema version.
func withMigrator(parent context.Context, fn func(context.Context, *database.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	l := logger.Get()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	defer migrator.Close()

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	if err := fn(ctx, migrator); err != nil {
		l.Error("Migration failed", zap.Error(err))
		return err
	}

	version, dirty, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	l.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
