package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"DATABASE_URL", "DB_MAX_CONNS", "STATS_HISTORY_DAYS", "LOG_LEVEL", "DEBUG",
	"SERVICE_NAME", "HOSTNAME", "ENVIRONMENT", "SERVER_PORT", "ALLOWED_ORIGINS",
	"GENERATION_PROVIDER", "GENERATION_BASE_URL", "GENERATION_API_KEY",
	"GENERATION_API_VERSION", "GENERATION_MODEL", "GENERATION_MAX_TOKENS",
	"GENERATION_TIMEOUT", "GEMINI_API_KEYS", "GEMINI_MODEL", "SESSION_IDLE_TTL", "MAX_SESSIONS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENERATION_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderMessages, cfg.GenerationProvider)
	assert.Equal(t, "https://api.anthropic.com", cfg.GenerationBaseURL)
	assert.Equal(t, "2023-06-01", cfg.GenerationAPIVersion)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.GenerationModel)
	assert.Equal(t, 1000, cfg.GenerationMaxTokens)
	assert.Equal(t, 60*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 28, cfg.StatsHistoryDays)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 1000, cfg.MaxSessions)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENERATION_API_KEY", "sk-test")
	t.Setenv("GENERATION_TIMEOUT", "15s")
	t.Setenv("GENERATION_MAX_TOKENS", "512")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SESSION_IDLE_TTL", "5m")
	t.Setenv("MAX_SESSIONS", "50")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 512, cfg.GenerationMaxTokens)
	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 50, cfg.MaxSessions)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_Gemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENERATION_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEYS", "k1,k2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.GenerationProvider)
	assert.Equal(t, []string{"k1", "k2"}, cfg.GeminiAPIKeys)
	assert.Equal(t, "gemini-2.0-flash-lite", cfg.GeminiModel)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"missing messages key", map[string]string{}, "GENERATION_API_KEY"},
		{"missing gemini keys", map[string]string{"GENERATION_PROVIDER": "gemini"}, "GEMINI_API_KEYS"},
		{"unknown provider", map[string]string{"GENERATION_PROVIDER": "other"}, "unknown GENERATION_PROVIDER"},
		{"bad timeout", map[string]string{"GENERATION_API_KEY": "sk", "GENERATION_TIMEOUT": "soon"}, "GENERATION_TIMEOUT"},
		{"bad session ttl", map[string]string{"GENERATION_API_KEY": "sk", "SESSION_IDLE_TTL": "later"}, "SESSION_IDLE_TTL"},
		{"bad db max conns", map[string]string{"GENERATION_API_KEY": "sk", "DB_MAX_CONNS": "not-a-number"}, "DB_MAX_CONNS"},
		{"bad stats history days", map[string]string{"GENERATION_API_KEY": "sk", "STATS_HISTORY_DAYS": "4w"}, "STATS_HISTORY_DAYS"},
		{"bad max tokens", map[string]string{"GENERATION_API_KEY": "sk", "GENERATION_MAX_TOKENS": "1k"}, "GENERATION_MAX_TOKENS"},
		{"bad max sessions", map[string]string{"GENERATION_API_KEY": "sk", "MAX_SESSIONS": "many"}, "MAX_SESSIONS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
