package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weave-labs/memkit/utils"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, utils.LogLevelWarn, cfg.LogLevel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MEMKIT_MODEL", "gpt-4o")
	t.Setenv("MEMKIT_TIMEOUT", "5s")
	t.Setenv("MEMKIT_LOG_LEVEL", "DEBUG")
	t.Setenv("MEMKIT_REQUESTS_PER_MINUTE", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, utils.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, 30, cfg.RequestsPerMinute)
}

func TestLoadConfigCollectsAPIKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-key", cfg.APIKeys["openai"])
}

func TestApplyOptions(t *testing.T) {
	cfg := NewConfig()
	ApplyOptions(cfg,
		SetProvider("openai"),
		SetModel("gpt-4o"),
		SetAPIKey("sk-abc"),
		SetRequestsPerMinute(-5),
		SetSystemPrompt("custom"),
	)

	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "sk-abc", cfg.APIKeys["openai"])
	assert.Equal(t, 0, cfg.RequestsPerMinute, "negative rpm is clamped to disabled")
	assert.Equal(t, "custom", cfg.SystemPrompt)
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	cfg.Model = ""
	assert.Error(t, cfg.Validate())
}
