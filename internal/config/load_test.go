package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, ".", cfg.AssetRoot)
	assert.False(t, cfg.UsesHTTP())
	assert.False(t, cfg.StrictRows)
	assert.Equal(t, 30*time.Second, cfg.ClientTimeout)
	assert.Equal(t, 3, cfg.ClientRetryMax)
	assert.Equal(t, 500*time.Millisecond, cfg.ClientRetryWait)
	assert.Equal(t, "127.0.0.1", cfg.Address)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 442, cfg.InitialIndex)
	assert.Equal(t, "ViT-L-14-336", cfg.DefaultVLMModel)
	assert.Equal(t, 2, cfg.PromptCount)
	assert.Equal(t, "gallery.json", cfg.CatalogPath)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "dev")
	t.Setenv("ASSET_BASE_URL", "https://assets.example.org/scam")
	t.Setenv("STRICT_ROWS", "true")
	t.Setenv("CLIENT_TIMEOUT", "5s")
	t.Setenv("ASSET_HOST_PORT", "9000")
	t.Setenv("EXPLORER_INITIAL_INDEX", "0")
	t.Setenv("EXPLORER_DEFAULT_VLM_MODEL", "RN50")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.True(t, cfg.UsesHTTP())
	assert.True(t, cfg.StrictRows)
	assert.Equal(t, 5*time.Second, cfg.ClientTimeout)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 0, cfg.InitialIndex)
	assert.Equal(t, "RN50", cfg.DefaultVLMModel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("ASSET_HOST_PORT", "not-a-port")

	_, err := LoadConfig(context.Background())
	assert.Error(t, err)
}
