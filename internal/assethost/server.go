// Package assethost serves the precomputed asset tree over HTTP so the
// viewers can load it remotely. It carries no application logic.
package assethost

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// NewServer creates an asset host for cfg.Root. Directories of AssetDirs
// that do not exist are skipped.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.BodyLimit == 0 {
		cfg.BodyLimit = DefaultBodyLimit
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("asset root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", cfg.Root)
	}

	log.Info().
		Any("config", cfg).
		Msg("Asset host configuration loaded")

	app := fiber.New(fiber.Config{
		Prefork:               false,
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		BodyLimit:             cfg.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(ZstdMiddleware([]string{"/data/"}))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Get(HealthRoute, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	for _, dir := range AssetDirs {
		path := filepath.Join(cfg.Root, dir)
		if _, err := os.Stat(path); err != nil {
			log.Warn().Str("dir", path).Msg("Asset directory missing, not serving it")
			continue
		}
		app.Static("/"+dir, path, fiber.Static{ByteRange: true})
		log.Debug().Str("route", "/"+dir).Str("dir", path).Msg("Serving asset directory")
	}

	return &Server{App: app, config: cfg}, nil
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("Fiber error handler triggered")

	return ctx.Status(code).JSON(errorResponse{Error: err.Error()})
}

// Addr is the listen address of the server.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Address, s.config.Port)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.Addr()).Str("root", s.config.Root).Msg("Asset host listening")
		errCh <- s.App.Listen(s.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("asset host: %w", err)
	case <-ctx.Done():
		log.Info().Msg("Shutting down asset host")
		return s.App.Shutdown()
	}
}
