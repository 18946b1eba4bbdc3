// Package config defines environment configuration structs and loaders.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type AppConfig struct {
	AssetsEnvConfig
	ClientEnvConfig
	AssetHostEnvConfig
	ExplorerEnvConfig
	GalleryEnvConfig
	Environment string `env:"ENVIRONMENT, default=prod"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(ctx context.Context) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}

// AssetsEnvConfig says where the static site assets live.
type AssetsEnvConfig struct {
	AssetBaseURL string `env:"ASSET_BASE_URL"`
	AssetRoot    string `env:"ASSET_ROOT, default=."`
	StrictRows   bool   `env:"STRICT_ROWS, default=false"`
}

// ClientEnvConfig configures the HTTP clients used to fetch assets.
type ClientEnvConfig struct {
	ClientTimeout   time.Duration `env:"CLIENT_TIMEOUT, default=30s"`
	ClientRetryMax  int           `env:"CLIENT_RETRY_MAX, default=3"`
	ClientRetryWait time.Duration `env:"CLIENT_RETRY_WAIT, default=500ms"`
}

// AssetHostEnvConfig configures the static asset host.
type AssetHostEnvConfig struct {
	Address   string `env:"ASSET_HOST_ADDRESS, default=127.0.0.1"`
	Port      int    `env:"ASSET_HOST_PORT, default=8000"`
	BodyLimit int    `env:"ASSET_HOST_BODY_LIMIT, default=1048576"`
}

// ExplorerEnvConfig holds the similarity explorer defaults.
type ExplorerEnvConfig struct {
	InitialIndex    int    `env:"EXPLORER_INITIAL_INDEX, default=442"`
	DefaultVLMModel string `env:"EXPLORER_DEFAULT_VLM_MODEL, default=ViT-L-14-336"`
	PromptCount     int    `env:"EXPLORER_PROMPT_COUNT, default=2"`
}

// GalleryEnvConfig holds the comparison gallery settings.
type GalleryEnvConfig struct {
	CatalogPath string `env:"GALLERY_CATALOG, default=gallery.json"`
}

// UsesHTTP reports whether assets should be fetched over HTTP.
func (c AssetsEnvConfig) UsesHTTP() bool {
	return c.AssetBaseURL != ""
}
