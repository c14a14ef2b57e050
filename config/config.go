package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DashboardURL    string
	Email           string
	Password        string
	Headless        bool
	RequestTimeout  time.Duration
	SelectorTimeout time.Duration
	SettleDelay     time.Duration
	MetricDelay     time.Duration
	MinActionDelay  time.Duration
	MaxActionDelay  time.Duration
	MaxRetries      int
	DataDir         string
	DBHost          string
	DBPort          int
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
}

func DefaultConfig() *Config {
	return &Config{
		DashboardURL:    "https://app.usebear.ai",
		Headless:        true,
		RequestTimeout:  120 * time.Second,
		SelectorTimeout: 1 * time.Second,
		SettleDelay:     2 * time.Second,
		MetricDelay:     2 * time.Second,
		MinActionDelay:  3 * time.Second,
		MaxActionDelay:  6 * time.Second,
		MaxRetries:      3,
		DataDir:         "data",
		DBPort:          5432,
		DBUser:          "postgres",
		DBPassword:      "postgres",
		DBName:          "bear_scraper",
		DBSSLMode:       "disable",
	}
}

// Load builds the runtime config: defaults overridden by environment
// variables. Credentials only ever come from the environment (or a .env
// file loaded before this runs).
func Load() *Config {
	cfg := DefaultConfig()

	cfg.Email = os.Getenv("BEAR_DASHBOARD_EMAIL")
	cfg.Password = os.Getenv("BEAR_DASHBOARD_PASSWORD")

	if v := os.Getenv("BEAR_DASHBOARD_URL"); v != "" {
		cfg.DashboardURL = v
	}
	if v := os.Getenv("BEAR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BEAR_HEADLESS"); v != "" {
		cfg.Headless = v != "false" && v != "0"
	}

	cfg.DBHost = os.Getenv("BEAR_DB_HOST")
	if v := os.Getenv("BEAR_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.DBPort = port
		}
	}
	if v := os.Getenv("BEAR_DB_USER"); v != "" {
		cfg.DBUser = v
	}
	if v := os.Getenv("BEAR_DB_PASSWORD"); v != "" {
		cfg.DBPassword = v
	}
	if v := os.Getenv("BEAR_DB_NAME"); v != "" {
		cfg.DBName = v
	}
	if v := os.Getenv("BEAR_DB_SSLMODE"); v != "" {
		cfg.DBSSLMode = v
	}

	return cfg
}

// HasCredentials reports whether both dashboard credentials are set.
func (c *Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}

// DBEnabled reports whether PostgreSQL history is configured.
// JSON files remain the primary sink either way.
func (c *Config) DBEnabled() bool {
	return c.DBHost != ""
}
