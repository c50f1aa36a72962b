// path: config/config.go

// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

var (
	ErrMissingAddr     = errors.New("LOKET_ADDR is required")
	ErrUnknownStore    = errors.New("LOKET_STORE must be one of: file, mongo, sqlite, memory")
	ErrMissingDataDir  = errors.New("LOKET_DATA_DIR is required for the file store")
	ErrMissingSQLite   = errors.New("LOKET_SQLITE_PATH is required for the sqlite store")
	ErrInvalidTimeout  = errors.New("LOKET_STORE_TIMEOUT must be positive")
	ErrInvalidLogLevel = errors.New("LOKET_LOG_LEVEL must be one of: debug, info, warn, error")
	ErrUnknownMongo    = errors.New("MONGO_MODE must be one of: auto, local, remote")
)

type Config struct {
	Addr         string        `env:"LOKET_ADDR" envDefault:":3005"`
	Store        string        `env:"LOKET_STORE" envDefault:"file"`
	DataDir      string        `env:"LOKET_DATA_DIR" envDefault:"data"`
	SQLitePath   string        `env:"LOKET_SQLITE_PATH" envDefault:"data/loket.db"`
	StaticDir    string        `env:"LOKET_STATIC_DIR" envDefault:"static"`
	LogLevel     string        `env:"LOKET_LOG_LEVEL" envDefault:"info"`
	CORSOrigins  string        `env:"LOKET_CORS_ORIGINS" envDefault:"http://localhost:3000"`
	Seed         bool          `env:"LOKET_SEED" envDefault:"true"`
	StoreTimeout time.Duration `env:"LOKET_STORE_TIMEOUT" envDefault:"8s"`

	Mongo Mongo
}

// Mongo holds the connection inputs; precedence between them is resolved by
// the database package.
type Mongo struct {
	Mode      string `env:"MONGO_MODE" envDefault:"auto"`
	DBName    string `env:"MONGO_DB" envDefault:"loket"`
	URI       string `env:"MONGO_URI"`
	URILocal  string `env:"MONGO_URI_LOCAL" envDefault:"mongodb://localhost:27017"`
	URIRemote string `env:"MONGO_URI_REMOTE"`
	Debug     bool   `env:"MONGO_DEBUG"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Addr = strings.TrimSpace(c.Addr)
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Mongo.Mode = strings.ToLower(strings.TrimSpace(c.Mongo.Mode))
	c.Mongo.URI = strings.TrimSpace(c.Mongo.URI)
	c.Mongo.URIRemote = strings.TrimSpace(c.Mongo.URIRemote)
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return ErrMissingAddr
	}
	switch c.Store {
	case StoreFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return ErrMissingDataDir
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return ErrMissingSQLite
		}
	case StoreMongo:
		switch c.Mongo.Mode {
		case "auto", "local", "remote":
		default:
			return ErrUnknownMongo
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	if c.StoreTimeout <= 0 {
		return ErrInvalidTimeout
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// AllowOrigins returns the CORS allow list in the comma separated form fiber
// expects.
func (c Config) AllowOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func (c Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, Store: %s, DataDir: %s, Seed: %t}", c.Addr, c.Store, c.DataDir, c.Seed)
}
