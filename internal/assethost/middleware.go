package assethost

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ZstdMiddleware compresses responses under the given path prefixes with
// zstd when the client accepts it. Responses already carrying a content
// encoding are left alone.
func ZstdMiddleware(prefixes []string) fiber.Handler {
	if prefixes == nil {
		prefixes = []string{"/data/"}
		log.Debug().
			Any("default", prefixes).
			Msg("Compressible prefixes not specified, using default")
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create zstd encoder")
	}

	return func(c *fiber.Ctx) error {
		if !hasAnyPrefix(c.Path(), prefixes) {
			return c.Next()
		}

		if err := c.Next(); err != nil {
			return err
		}

		if !strings.Contains(strings.ToLower(c.Get(fiber.HeaderAcceptEncoding)), "zstd") {
			return nil
		}
		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		if len(c.Response().Header.Peek(fiber.HeaderContentEncoding)) > 0 {
			return nil
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		compressed := encoder.EncodeAll(body, make([]byte, 0, len(body)/2))
		c.Response().SetBody(compressed)
		c.Set(fiber.HeaderContentEncoding, "zstd")
		c.Set(fiber.HeaderContentLength, strconv.Itoa(len(compressed)))
		c.Vary(fiber.HeaderAcceptEncoding)

		log.Trace().
			Str("path", c.Path()).
			Int("original_size", len(body)).
			Int("compressed_size", len(compressed)).
			Msg("Response body compressed")
		return nil
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
