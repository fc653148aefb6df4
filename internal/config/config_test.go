package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"EASYCONTACT_API_URL", "EASYCONTACT_HOME", "EASYCONTACT_TOKEN_BACKEND",
		"EASYCONTACT_TOKEN", "EASYCONTACT_HTTP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "EASYCONTACT_LOG_FILE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, BackendFile, cfg.TokenBackend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Contains(t, cfg.Home, ".easycontact")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EASYCONTACT_API_URL", "https://api.example.com/")
	t.Setenv("EASYCONTACT_TOKEN_BACKEND", "SQLite")
	t.Setenv("EASYCONTACT_HTTP_TIMEOUT", "5s")
	t.Setenv("EASYCONTACT_TOKEN", "  abc  ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, BackendSQLite, cfg.TokenBackend)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "abc", cfg.EnvToken)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("EASYCONTACT_TOKEN_BACKEND", "redis")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("EASYCONTACT_TOKEN_BACKEND", "")
	t.Setenv("EASYCONTACT_HTTP_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}
