// Package config loads environment configuration.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-scoped settings. Run-scoped options (query,
// filters, sort order) stay on command-line flags.
type Config struct {
	APIKey       string        `envconfig:"YOUTUBE_API_KEY"`
	ClientID     string        `envconfig:"YOUTUBE_CLIENT_ID"`
	ClientSecret string        `envconfig:"YOUTUBE_CLIENT_SECRET"`
	RedirectURL  string        `envconfig:"OAUTH_REDIRECT_URI" default:"http://localhost:8080"`
	CacheDir     string        `envconfig:"CACHE_DIR" default:"./cache"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	TokenFile    string        `envconfig:"TOKEN_FILE" default:"token.json"`
	PageLimit    int           `envconfig:"PAGE_LIMIT" default:"50"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
