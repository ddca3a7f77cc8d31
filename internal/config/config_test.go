package config_test

import (
	"testing"

	"github.com/carryforward/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

// clean unsets every variable the configuration reads.
func clean(t *testing.T) {
	for _, k := range []string{"PORT", "API_URL", "GIN_MODE", "LOG_FORMAT", "DB_PATH", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "CORS_ALLOW_ORIGINS", "ENABLE_PPROF", "CURRENCY", "SANDBOX_UNDO_LIMIT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clean(t)
	t.Setenv("API_URL", "http://localhost:8080/api")

	c := config.Load()
	require.Nil(t, c.Validate())

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, "data/gorm.db", c.DBPath)
	assert.Equal(t, currency.EUR, c.Currency)
	assert.Equal(t, 100, c.SandboxUndoLimit)
	assert.Equal(t, "/api", c.APIURL.Path)
	assert.False(t, c.Postgres())
	assert.False(t, c.EnablePprof)
	assert.False(t, c.HumanLogs())
}

func TestLoad(t *testing.T) {
	clean(t)
	t.Setenv("API_URL", "https://example.com")
	t.Setenv("PORT", "3000")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("CURRENCY", "USD")
	t.Setenv("SANDBOX_UNDO_LIMIT", "5")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000 https://example.com")
	t.Setenv("ENABLE_PPROF", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "budget")
	t.Setenv("DB_NAME", "budget")

	c := config.Load()
	require.Nil(t, c.Validate())

	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, currency.USD, c.Currency)
	assert.Equal(t, 5, c.SandboxUndoLimit)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, c.CORSAllowOrigins)
	assert.True(t, c.EnablePprof)
	assert.True(t, c.Postgres())
	assert.True(t, c.HumanLogs())
	assert.Contains(t, c.PostgresDSN(), "host=db")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{"missing API_URL", map[string]string{"API_URL": ""}, "API_URL must be set"},
		{"port not a number", map[string]string{"PORT": "http"}, "invalid port 'http'"},
		{"port out of range", map[string]string{"PORT": "70000"}, "invalid port 70000"},
		{"gin mode", map[string]string{"GIN_MODE": "loud"}, "invalid GIN_MODE"},
		{"log format", map[string]string{"LOG_FORMAT": "xml"}, "invalid LOG_FORMAT"},
		{"currency", map[string]string{"CURRENCY": "EURO"}, "invalid CURRENCY"},
		{"undo limit", map[string]string{"SANDBOX_UNDO_LIMIT": "0"}, "invalid SANDBOX_UNDO_LIMIT 0"},
		{"undo limit not a number", map[string]string{"SANDBOX_UNDO_LIMIT": "many"}, "invalid SANDBOX_UNDO_LIMIT 'many'"},
		{"postgres", map[string]string{"DB_HOST": "db"}, "DB_USER and DB_NAME must be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean(t)
			t.Setenv("API_URL", "http://localhost:8080")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := config.Load().Validate()
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
