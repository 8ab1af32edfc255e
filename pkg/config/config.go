package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the savings command reads from its environment.
type Config struct {
	// Store is a store URI, see store.Open.
	Store string

	// Passphrase seals stored values when non-empty.
	Passphrase string

	// Location is the zone calendar days are counted in.
	Location *time.Location

	Env      string
	LogLevel string

	// Elasticsearch addresses for export; empty means use the
	// ELASTICSEARCH_SERVICE_HOST/PORT defaults.
	Elasticsearch []string
}

// Load reads configuration from environment variables, after loading a .env
// file from the working directory if there is one.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Store:      getEnv("SAVINGS_STORE", defaultStore()),
		Passphrase: os.Getenv("SAVINGS_PASSPHRASE"),
		Env:        getEnv("SAVINGS_ENV", "development"),
		LogLevel:   getEnv("SAVINGS_LOG_LEVEL", "warn"),
	}

	for _, url := range strings.Split(os.Getenv("SAVINGS_ELASTICSEARCH"), ",") {
		if url = strings.TrimSpace(url); url != "" {
			cfg.Elasticsearch = append(cfg.Elasticsearch, url)
		}
	}

	tz := getEnv("SAVINGS_TZ", "")
	if tz == "" {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("SAVINGS_TZ: %w", err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

// IsProduction reports if console-friendly output should be turned off.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func defaultStore() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return "jsonfile:" + filepath.Join(dir, "savings", "ledger.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
