package gallery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Preloader fetches an asset ahead of display.
type Preloader interface {
	Preload(ctx context.Context, src string) error
}

// PreloaderFunc adapts a function to Preloader.
type PreloaderFunc func(ctx context.Context, src string) error

func (f PreloaderFunc) Preload(ctx context.Context, src string) error { return f(ctx, src) }

// HTTPPreloader downloads assets from the static host so the full image is
// complete before a tile switches to it.
type HTTPPreloader struct {
	client *resty.Client
}

func NewHTTPPreloader(baseURL string, timeout time.Duration) *HTTPPreloader {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)
	return &HTTPPreloader{client: client}
}

func (p *HTTPPreloader) Preload(ctx context.Context, src string) error {
	resp, err := p.client.R().SetContext(ctx).Get("/" + strings.TrimLeft(src, "/"))
	if err != nil {
		return fmt.Errorf("preload %s: %w", src, err)
	}
	if resp.IsError() {
		return fmt.Errorf("preload %s returned status %d", src, resp.StatusCode())
	}

	log.Trace().Str("src", src).Int("bytes", len(resp.Body())).Msg("preloaded full resolution image")
	return nil
}

// NoopPreloader succeeds immediately; used when assets are local files.
type NoopPreloader struct{}

func (NoopPreloader) Preload(context.Context, string) error { return nil }
