package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clario/backend/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.AppPort)
	assert.Equal(t, "./data/clario.db", cfg.DatabasePath)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiBaseURL)
	assert.Equal(t, "https://api.d-id.com", cfg.DIDBaseURL)
	assert.Equal(t, "./public/videos", cfg.VideosDir)
	assert.Equal(t, config.DefaultModelFallbacks, cfg.ModelFallbacks)
	assert.Contains(t, cfg.SystemPrompt, "Dr. Neutron")
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadConfig_FallbacksFromEnv(t *testing.T) {
	t.Setenv("MODEL_FALLBACKS", "models/gemini-2.5-flash, models/gemini-2.0-flash ,,models/gemini-2.5-pro")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"models/gemini-2.5-flash",
		"models/gemini-2.0-flash",
		"models/gemini-2.5-pro",
	}, cfg.ModelFallbacks)
}
