package assethost

import "github.com/gofiber/fiber/v2"

const (
	DefaultAddress   = "127.0.0.1"
	DefaultPort      = 8000
	DefaultBodyLimit = 1024 * 1024 // 1MB

	HealthRoute = "/health"
)

// AssetDirs are the directories under the asset root that are served, each
// at the route of the same name.
var AssetDirs = []string{"data", "data_images", "images"}

// Server serves the static asset tree read by the explorer and gallery.
type Server struct {
	App    *fiber.App
	config *Config
}

type Config struct {
	Address   string
	Port      int
	BodyLimit int
	Root      string
}

type errorResponse struct {
	Error string `json:"error"`
}
