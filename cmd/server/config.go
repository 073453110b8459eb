package main

import (
	"github.com/dmitrymomot/pathway/core/logger"
	"github.com/dmitrymomot/pathway/core/server"
)

// Config is the application configuration loaded from the environment.
// APP_NAME and APP_ENV are read by the embedded logger.Config.
type Config struct {
	// RoutesFile optionally points at a TOML route manifest mounted next to
	// the built-in routes. The manifest should set a non-empty fixed_start,
	// otherwise it claims every path outside /api.
	RoutesFile string `env:"APP_ROUTES_FILE"`

	// CORSOrigins lists the origins allowed to call the API. Empty allows all.
	CORSOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	Server server.Config
	Log    logger.Config
}
