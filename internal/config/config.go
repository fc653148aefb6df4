package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	APIURL       string
	Home         string // holds credentials.json / session.db
	TokenBackend string // "file" | "sqlite"
	EnvToken     string // EASYCONTACT_TOKEN override
	HTTPTimeout  time.Duration
	LogLevel     string
	LogFormat    string // "text" | "json"
	LogFile      string
	Theme        string
}

// Load reads configuration from the environment, falling back to defaults.
func Load() (*Config, error) {
	home, err := defaultHome()
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		APIURL:       strings.TrimRight(getEnv("EASYCONTACT_API_URL", "http://localhost:3000"), "/"),
		Home:         getEnv("EASYCONTACT_HOME", home),
		TokenBackend: strings.ToLower(getEnv("EASYCONTACT_TOKEN_BACKEND", BackendFile)),
		EnvToken:     strings.TrimSpace(os.Getenv("EASYCONTACT_TOKEN")),
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		LogFile:      os.Getenv("EASYCONTACT_LOG_FILE"),
		Theme:        getEnv("EASYCONTACT_THEME", "classic"),
	}
	if raw := os.Getenv("EASYCONTACT_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("EASYCONTACT_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	switch cfg.TokenBackend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("EASYCONTACT_TOKEN_BACKEND: unknown backend %q", cfg.TokenBackend)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".easycontact"), nil
}
