package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Workbook source selection: "memory" (CSV seeds) or "sheets".
	WorkbookBackend string
	DataDir         string
	SpreadsheetID   string

	// Snapshot store (optional; empty path disables it)
	SQLiteDBPath string

	// AMQP (optional; empty URL disables publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker
	RefreshInterval time.Duration
	SnapshotLimit   int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		WorkbookBackend: getEnv("WORKBOOK_BACKEND", "memory"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		SpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "sharptoken"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "snapshot_refreshed"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 15*time.Minute),
		SnapshotLimit:   getEnvInt("SNAPSHOT_LIMIT", 50),
	}
}

// Validate checks the configuration and returns a combined error when any
// value is out of range.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.WorkbookBackend {
	case "memory", "sheets":
	default:
		errs = append(errs, fmt.Sprintf("invalid workbook backend '%s': must be one of [memory sheets]", c.WorkbookBackend))
	}

	if c.WorkbookBackend == "sheets" && c.SpreadsheetID == "" {
		errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RefreshInterval < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid refresh interval %v: must be at least 1 minute", c.RefreshInterval))
	} else if c.RefreshInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid refresh interval %v: must be at most 24 hours", c.RefreshInterval))
	}

	if c.SnapshotLimit < 1 || c.SnapshotLimit > 1000 {
		errs = append(errs, fmt.Sprintf("invalid snapshot limit %d: must be between 1 and 1000", c.SnapshotLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
