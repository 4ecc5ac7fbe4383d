package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Guide   GuideConfig
	Sheets  SheetsConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// GuideConfig contains credentials for the breed genetic-guide API. When
// BaseURL is empty the guide comparison is disabled and indicator rows carry
// no guide fields.
type GuideConfig struct {
	BaseURL string
	Token   string
}

// SheetsConfig contains configuration for the weekly indicator export sheet.
// When SpreadsheetID is empty the scheduled export is disabled.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// ExportConfig holds scheduler-related settings.
type ExportConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "avicore"),
		},
		Guide: GuideConfig{
			BaseURL: os.Getenv("GUIDE_API_BASE_URL"),
			Token:   os.Getenv("GUIDE_API_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Export: ExportConfig{
			CronSchedule: getenvWithDefault("EXPORT_CRON_SCHEDULE", "0 6 * * 1"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Bogota"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when export is enabled")
	}

	if c.Export.CronSchedule == "" {
		return errors.New("EXPORT_CRON_SCHEDULE must be provided")
	}
	if c.Export.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// ExportEnabled reports whether the sheet export target is configured.
func (c *Config) ExportEnabled() bool {
	return c.Sheets.SpreadsheetID != ""
}

// GuideEnabled reports whether the genetic-guide API is configured.
func (c *Config) GuideEnabled() bool {
	return c.Guide.BaseURL != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
