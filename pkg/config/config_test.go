package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "LOG_LEVEL", "LOG_FORMAT", "COMPOSER_MODE", "COMPOSER_LIMIT", "COMPOSER_STEP_BUDGET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, LogConfig{Level: "info", Format: "json"}, cfg.Log)
	assert.Equal(t, ComposerConfig{Mode: ModeAll}, cfg.Composer)
}

func TestLoadFromEnvironment(t *testing.T) {
	//** Arrange
	t.Setenv("ENV", EnvProduction)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("COMPOSER_MODE", " BestEffort ")
	t.Setenv("COMPOSER_LIMIT", "5")
	t.Setenv("COMPOSER_STEP_BUDGET", "100000")

	//** Act
	cfg, err := Load()

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ComposerConfig{Mode: ModeBestEffort, Limit: 5, StepBudget: 100000}, cfg.Composer)
}

func TestLoadSanitizesComposer(t *testing.T) {
	t.Setenv("COMPOSER_MODE", "exhaustive")
	t.Setenv("COMPOSER_LIMIT", "-3")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ModeAll, cfg.Composer.Mode)
	assert.Equal(t, 0, cfg.Composer.Limit)
}
