// Package cli provides common initialization shared by the salesdash
// binaries: env loading, logging, config validation and data source
// selection.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"salesdash/internal/config"
	applog "salesdash/internal/log"
	"salesdash/internal/source"
	gsheet "salesdash/internal/source/google"
	mem "salesdash/internal/source/memory"
	"salesdash/internal/source/oauth"
	"salesdash/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Setup loads and validates configuration and builds the root logger.
// Exits the process on failure.
func Setup() (*config.Config, *slog.Logger) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := applog.New(applog.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// BuildSource selects the configured row source.
func BuildSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (source.RowSource, error) {
	switch cfg.DataSource {
	case "google":
		cli, err := gsheet.NewFromEnv(ctx, cfg.SpreadsheetID, cfg.SheetRange)
		if err != nil {
			return nil, err
		}
		logger.Info("Initialized service-account source", "spreadsheet_id", cfg.SpreadsheetID)
		return cli, nil
	case "memory":
		logger.Info("Initialized memory source", "seed_file", cfg.SeedFile)
		return mem.NewFromFile(cfg.SeedFile), nil
	default:
		creds := oauth.Static{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RefreshToken: cfg.GoogleRefreshToken,
		}
		cli := oauth.NewClient(creds, cfg.SpreadsheetID, cfg.SheetRange,
			oauth.WithTokenURL(cfg.TokenURL),
			oauth.WithBaseURL(cfg.SheetsBaseURL),
			oauth.WithTimeout(cfg.FetchTimeout))
		logger.Info("Initialized oauth source", "spreadsheet_id", cfg.SpreadsheetID)
		return cli, nil
	}
}

// InitSnapshots opens the SQLite snapshot repository.
// Exits the process on failure.
func InitSnapshots(logger *slog.Logger, dbPath string) *storage.SnapshotRepository {
	repo, err := storage.NewSnapshotRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize snapshot repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
