package simdata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// Source fetches a static asset by its site-relative path, e.g.
// "data/vlm_similarity_metadata.json".
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// DirSource reads assets from a local checkout of the site.
type DirSource struct {
	Root string
}

func (d DirSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := filepath.Join(d.Root, filepath.FromSlash(path))
	b, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", path, err)
	}
	return b, nil
}

// HTTPConfig configures an HTTPSource.
type HTTPConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RetryMax  int
	RetryWait time.Duration
}

// HTTPSource fetches assets from a static host, retrying transient failures.
type HTTPSource struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

func NewHTTPSource(cfg HTTPConfig) (*HTTPSource, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("asset base url cannot be empty")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	if cfg.RetryWait > 0 {
		client.RetryWaitMin = cfg.RetryWait
		client.RetryWaitMax = cfg.RetryWait * 4
	}
	client.Logger = nil

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Int("retry_max", client.RetryMax).
		Str("timeout", client.HTTPClient.Timeout.String()).
		Msg("asset http source initialized")

	return &HTTPSource{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: client,
	}, nil
}

func (h *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := h.baseURL + "/" + strings.TrimLeft(path, "/")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept-Encoding", "zstd")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s returned status %d", path, resp.StatusCode)
	}

	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Encoding")), "zstd") {
		body, err = decodeZstd(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	log.Trace().Str("url", url).Int("bytes", len(body)).Msg("fetched asset")
	return body, nil
}

func decodeZstd(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to create reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to decompress: %w", err)
	}
	return out, nil
}
