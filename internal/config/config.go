// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a setting is outside its allowed range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	DataPath          string
	DataURL           string
	DatabasePath      string
	LogPath           string
	LogLevel          string
	ScrapeBaseURL     string
	UserAgent         string
	DiscordWebhookURL string
	LookbackPeriods   int
	TopCount          int
	ScrapePages       int
	ScrapeDelay       time.Duration
	HTTPTimeout       time.Duration
	Notifications     bool
}

// Default values
const (
	defaultLookbackPeriods = 30
	defaultTopCount        = 5
	defaultScrapePages     = 3
	defaultScrapeDelay     = 2 * time.Second
	defaultHTTPTimeout     = 10 * time.Second
	defaultLogLevel        = "info"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataPath:          getEnvString("DATA_PATH", FindDataFile()),
		DataURL:           getEnvString("DATA_URL", ""),
		DatabasePath:      getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogPath:           getEnvString("LOG_PATH", getDefaultLogPath()),
		LogLevel:          getEnvString("LOG_LEVEL", defaultLogLevel),
		ScrapeBaseURL:     getEnvString("SCRAPE_BASE_URL", DefaultScrapeBaseURL),
		UserAgent:         getEnvString("SCRAPE_USER_AGENT", DefaultUserAgent),
		DiscordWebhookURL: getEnvString("DISCORD_WEBHOOK_URL", ""),
		LookbackPeriods:   getEnvInt("LOOKBACK_PERIODS", defaultLookbackPeriods),
		TopCount:          getEnvInt("TOP_COUNT", defaultTopCount),
		ScrapePages:       getEnvInt("SCRAPE_PAGES", defaultScrapePages),
		ScrapeDelay:       getEnvDuration("SCRAPE_DELAY", defaultScrapeDelay),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", defaultHTTPTimeout),
		Notifications:     getEnvBool("NOTIFICATIONS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks numeric settings for sane ranges.
func (c *Config) Validate() error {
	if c.LookbackPeriods <= 0 {
		return fmt.Errorf("%w: LOOKBACK_PERIODS must be positive, got %d", ErrInvalidConfig, c.LookbackPeriods)
	}
	if c.TopCount < 1 || c.TopCount > 39 {
		return fmt.Errorf("%w: TOP_COUNT must be between 1 and 39, got %d", ErrInvalidConfig, c.TopCount)
	}
	if c.ScrapePages < 1 {
		return fmt.Errorf("%w: SCRAPE_PAGES must be at least 1, got %d", ErrInvalidConfig, c.ScrapePages)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive, got %s", ErrInvalidConfig, c.HTTPTimeout)
	}
	if c.DataPath == "" && c.DataURL == "" {
		return fmt.Errorf("%w: one of DATA_PATH or DATA_URL is required", ErrInvalidConfig)
	}
	return nil
}

// UsesURL reports whether the dataset is fetched over HTTP instead of read
// from a local file.
func (c *Config) UsesURL() bool {
	return c.DataURL != ""
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "lotto-dashboard", ".env"),
			filepath.Join(home, ".lotto-dashboard", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite draw archive.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "draws.db"
	}
	return filepath.Join(home, ".config", "lotto-dashboard", "draws.db")
}

// getDefaultLogPath returns the default path for the TUI log file.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ldt.log"
	}
	return filepath.Join(home, ".config", "lotto-dashboard", "ldt.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool plus "yes", "no", "on" and "off".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
