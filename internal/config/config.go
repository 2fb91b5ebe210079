package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"secret_key_change_me"`
	SiteURL       string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	PostsPerPage  int    `env:"POSTS_PER_PAGE" envDefault:"10"`
	TemplatesDir  string `env:"TEMPLATES_DIR" envDefault:"./web/templates"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PostsPerPage < 1 {
		cfg.PostsPerPage = 10
	}
	return cfg, nil
}
