// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"habitme/internal/logger"
)

// Supported STORE values.
const (
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
	StoreMongo     = "mongo"
	StoreFirestore = "firestore"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr       string `envconfig:"ADDR" default:":8080"`
	WebDir     string `envconfig:"WEB_DIR" default:"web"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	Timezone   string `envconfig:"TIMEZONE"`

	Store            string `envconfig:"STORE" default:"memory"` // memory|postgres|mongo|firestore
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	MongoURI         string `envconfig:"MONGO_URI"`
	MongoDatabase    string `envconfig:"MONGO_DATABASE" default:"habitme"`
	FirestoreProject string `envconfig:"FIRESTORE_PROJECT"`

	QuoteURL     string        `envconfig:"QUOTE_URL"`
	QuoteTimeout time.Duration `envconfig:"QUOTE_TIMEOUT" default:"3s"`
}

// Load reads an optional .env file and then environment variables into
// Config, and validates the result.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the store selection, its connection settings, and the
// log level.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for STORE=postgres")
		}
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for STORE=mongo")
		}
	case StoreFirestore:
		if c.FirestoreProject == "" {
			return errors.New("FIRESTORE_PROJECT is required for STORE=firestore")
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	if c.QuoteTimeout <= 0 {
		return errors.New("QUOTE_TIMEOUT must be positive")
	}
	_, err := c.Location()
	return err
}

// Location resolves TIMEZONE. Empty means the process local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
