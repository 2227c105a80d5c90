// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file,
when present, is loaded first so developers do not need to export variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the WeebTsuki API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing (comma separated, development allows any origin)
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Outbound mail. An empty SMTP host switches to the log mailer.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"     envDefault:"WeebTsuki <no-reply@weebtsuki.app>"`

	// FrontendURL is used to build links in outgoing mail (password reset).
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Home sections read-through cache. "memory" keeps it in process, which
	// only stays coherent with a single API replica.
	HomeSectionsCache    string        `env:"HOME_SECTIONS_CACHE"     envDefault:"redis"`
	HomeSectionsCacheTTL time.Duration `env:"HOME_SECTIONS_CACHE_TTL" envDefault:"60s"`

	// Cron schedules (standard 5-field specs, empty disables the job)
	CronWarmSections     string `env:"CRON_WARM_SECTIONS"     envDefault:"*/1 * * * *"`
	CronReconcileRatings string `env:"CRON_RECONCILE_RATINGS" envDefault:"0 3 * * *"`
}

// Home sections cache backends.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	switch cfg.HomeSectionsCache {
	case CacheBackendRedis, CacheBackendMemory:
	default:
		return nil, fmt.Errorf("config: HOME_SECTIONS_CACHE must be %q or %q, got %q",
			CacheBackendRedis, CacheBackendMemory, cfg.HomeSectionsCache)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins returns the trimmed CORS allow-list.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
