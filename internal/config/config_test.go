package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so a developer's local config.yaml cannot leak in.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, "models", cfg.Models.Directory)
	assert.InDelta(t, 0.3, cfg.Categorization.StatisticalThreshold, 1e-9)
	assert.InDelta(t, 0.1, cfg.Categorization.KeywordFloor, 1e-9)
	assert.InDelta(t, 0.2, cfg.Training.TestFraction, 1e-9)
	assert.Equal(t, 1000, cfg.Training.MaxFeatures)
	assert.False(t, cfg.AI.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATEGORIZER_LOG_LEVEL", "debug")
	t.Setenv("CATEGORIZER_SERVER_ADDRESS", ":8080")
	t.Setenv("CATEGORIZER_CATEGORIZATION_STATISTICAL_THRESHOLD", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.InDelta(t, 0.5, cfg.Categorization.StatisticalThreshold, 1e-9)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "CATEGORIZER_LOG_LEVEL", "verbose"},
		{"bad log format", "CATEGORIZER_LOG_FORMAT", "xml"},
		{"threshold out of range", "CATEGORIZER_CATEGORIZATION_STATISTICAL_THRESHOLD", "1.5"},
		{"test fraction out of range", "CATEGORIZER_TRAINING_TEST_FRACTION", "1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadAIRequiresAPIKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATEGORIZER_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
