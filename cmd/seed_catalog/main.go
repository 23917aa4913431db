package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"career-quiz/cmd/seed_catalog/internal/seedmodels"
	"career-quiz/internal/config"
	"career-quiz/internal/database"
	"career-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const defaultSeedFilePath = "config/seed_data/professions.json"

const upsertProfession = `MERGE INTO professions p
USING (SELECT :1 code, :2 title, :3 ml_class_code FROM dual) s
ON (p.code = s.code)
WHEN MATCHED THEN UPDATE SET p.title = s.title, p.ml_class_code = s.ml_class_code
WHEN NOT MATCHED THEN INSERT (code, title, ml_class_code) VALUES (s.code, s.title, s.ml_class_code)`

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "path to the profession seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	catalog, err := loadCatalog(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to load seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}
	log.Info("Loaded profession catalog", zap.Int("professions", len(catalog.Professions)))

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	if err := seedProfessions(ctx, db, log, catalog.Professions); err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Profession catalog seeded")
}

func loadCatalog(path string) (*seedmodels.SeedCatalog, error) {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog seedmodels.SeedCatalog
	if err := json.Unmarshal(byteValue, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	for i, p := range catalog.Professions {
		if strings.TrimSpace(p.Code) == "" || strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("profession %d: code and title are required", i)
		}
	}
	return &catalog, nil
}

// seedProfessions upserts every profession in one transaction.
func seedProfessions(ctx context.Context, db *sqlx.DB, log *zap.Logger, professions []seedmodels.SeedProfession) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
			return
		}
		err = tx.Commit()
	}()

	for _, p := range professions {
		var mlClass interface{}
		if code := strings.TrimSpace(p.MLClassCode); code != "" {
			mlClass = code
		}
		if _, err = tx.ExecContext(ctx, upsertProfession, strings.TrimSpace(p.Code), p.Title, mlClass); err != nil {
			return fmt.Errorf("failed to upsert profession %s: %w", p.Code, err)
		}
		log.Debug("Upserted profession", zap.String("code", p.Code))
	}
	return nil
}
