// Package config loads application configuration from the environment.
// Credentials are always injected here; nothing in the codebase carries a
// hard-coded secret.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full configuration for both the API server and the refresh
// worker. Variables are prefixed SALESDASH_ (e.g. SALESDASH_PORT).
type Config struct {
	// HTTP server
	Port int `envconfig:"PORT" default:"8081"`

	// Data source selection: oauth (refresh-token exchange), google
	// (service account), or memory (CSV seed for local development).
	DataSource string `envconfig:"DATA_SOURCE" default:"oauth"`

	// Spreadsheet
	SpreadsheetID string `envconfig:"SPREADSHEET_ID"`
	SheetRange    string `envconfig:"SHEET_RANGE" default:"Sales"`

	// OAuth refresh-token exchange
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GoogleRefreshToken string `envconfig:"GOOGLE_REFRESH_TOKEN"`
	TokenURL           string `envconfig:"TOKEN_URL" default:"https://oauth2.googleapis.com/token"`
	SheetsBaseURL      string `envconfig:"SHEETS_BASE_URL" default:"https://sheets.googleapis.com"`

	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`

	// Memory source
	SeedFile string `envconfig:"SEED_FILE" default:"data/seed_sales.csv"`

	// Snapshot persistence
	SQLiteDBPath string `envconfig:"SQLITE_DB_PATH" default:"./data/salesdash.db"`

	// AMQP (optional; empty URL disables refresh events)
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"salesdash"`
	AMQPQueue    string `envconfig:"AMQP_QUEUE" default:"dataset_refreshes"`

	// Worker
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SALESDASH", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return &cfg, nil
}

var validSources = []string{"oauth", "google", "memory"}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	sourceOK := false
	for _, s := range validSources {
		if c.DataSource == s {
			sourceOK = true
			break
		}
	}
	if !sourceOK {
		problems = append(problems, fmt.Sprintf("invalid data source '%s': must be one of %v", c.DataSource, validSources))
	}

	switch c.DataSource {
	case "oauth":
		if c.SpreadsheetID == "" {
			problems = append(problems, "spreadsheet ID is required for the oauth source")
		}
		if c.GoogleClientID == "" || c.GoogleClientSecret == "" || c.GoogleRefreshToken == "" {
			problems = append(problems, "GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN are required for the oauth source")
		}
	case "google":
		if c.SpreadsheetID == "" {
			problems = append(problems, "spreadsheet ID is required for the google source")
		}
	}

	if c.SheetRange == "" {
		problems = append(problems, "sheet range cannot be empty")
	}

	if c.FetchTimeout < time.Second {
		problems = append(problems, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	}

	if c.AMQPURL != "" {
		parsed, err := url.Parse(c.AMQPURL)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RefreshInterval < time.Second {
		problems = append(problems, fmt.Sprintf("invalid refresh interval %v: must be at least 1 second", c.RefreshInterval))
	} else if c.RefreshInterval > 24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid refresh interval %v: must be at most 24 hours", c.RefreshInterval))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
