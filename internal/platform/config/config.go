// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It uses 'caarlos0/env' to map OS environment variables into a typed struct,
with defaults and early validation.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and handed to components through
their constructors.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/reelhub/internal/platform/mongo"
	"github.com/taibuivan/reelhub/internal/platform/sec"
	"github.com/taibuivan/reelhub/pkg/query"
)

// # Storage Drivers

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Reelhub API server.
type Config struct {

	// Server settings
	ServerPort     string        `env:"SERVER_PORT"     envDefault:"8080"`
	Environment    string        `env:"ENVIRONMENT"     envDefault:"development"`
	Debug          bool          `env:"DEBUG"           envDefault:"false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// StorageDriver selects the account/library backend.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Document Database (MongoDB)
	Mongo mongo.Config

	// Key-Value store (Redis). Empty disables the signin throttle.
	RedisURL string `env:"REDIS_URL"`

	// Session tokens
	TokenSecret string        `env:"TOKEN_SECRET,required,unset"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"    envDefault:"24h"`
	TokenIssuer string        `env:"TOKEN_ISSUER" envDefault:"reelhub.app"`

	// Password derivation
	KDFIterations int    `env:"KDF_ITERATIONS"  envDefault:"1000"`
	KDFSaltLength int    `env:"KDF_SALT_LENGTH" envDefault:"16"`
	KDFKeyLength  int    `env:"KDF_KEY_LENGTH"  envDefault:"64"`
	KDFDigest     string `env:"KDF_DIGEST"      envDefault:"sha512"`

	// External identity (OpenID Connect). Empty client id disables it.
	OIDCIssuer   string `env:"OIDC_ISSUER"    envDefault:"https://accounts.google.com"`
	OIDCClientID string `env:"OIDC_CLIENT_ID"`

	// Signin throttling
	SigninMaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS" envDefault:"5"`
	SigninLockout     time.Duration `env:"SIGNIN_LOCKOUT"      envDefault:"15m"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the cross-field requirements env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverMongo:
		if c.Mongo.ConnectionURL == "" {
			errs = append(errs, errors.New("MONGODB_URL is required for the mongo driver"))
		}
	case DriverMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("the memory driver cannot be used in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if len(c.TokenSecret) < sec.MinSecretLength {
		errs = append(errs, fmt.Errorf("TOKEN_SECRET must be at least %d bytes", sec.MinSecretLength))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.SigninMaxAttempts <= 0 || c.SigninLockout <= 0 {
		errs = append(errs, errors.New("SIGNIN_MAX_ATTEMPTS and SIGNIN_LOCKOUT must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS allow-list parsed from EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	return query.CSV(c.ExtraOrigins)
}

// KDFParams returns the password derivation settings.
func (c *Config) KDFParams() sec.KDFParams {
	return sec.KDFParams{
		Iterations: c.KDFIterations,
		SaltLength: c.KDFSaltLength,
		KeyLength:  c.KDFKeyLength,
		Digest:     c.KDFDigest,
	}
}

// ExternalSigninEnabled reports whether OIDC sign-in should be mounted.
func (c *Config) ExternalSigninEnabled() bool {
	return c.OIDCClientID != ""
}

// ThrottleEnabled reports whether a Redis URL was configured.
func (c *Config) ThrottleEnabled() bool {
	return c.RedisURL != ""
}
