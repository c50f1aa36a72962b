package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3005", cfg.Addr)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 8*time.Second, cfg.StoreTimeout)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "auto", cfg.Mongo.Mode)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URILocal)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOKET_ADDR", ":8080")
	t.Setenv("LOKET_STORE", " SQLite ")
	t.Setenv("LOKET_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("LOKET_SEED", "false")
	t.Setenv("LOKET_STORE_TIMEOUT", "2s")
	t.Setenv("LOKET_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.False(t, cfg.Seed)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("LOKET_STORE_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Addr:         ":3005",
		Store:        StoreFile,
		DataDir:      "data",
		LogLevel:     "info",
		StoreTimeout: time.Second,
		Mongo:        Mongo{Mode: "auto"},
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no addr", func(c *Config) { c.Addr = "" }, ErrMissingAddr},
		{"unknown store", func(c *Config) { c.Store = "redis" }, ErrUnknownStore},
		{"file without dir", func(c *Config) { c.DataDir = " " }, ErrMissingDataDir},
		{"sqlite without path", func(c *Config) { c.Store = StoreSQLite; c.SQLitePath = "" }, ErrMissingSQLite},
		{"bad mongo mode", func(c *Config) { c.Store = StoreMongo; c.Mongo.Mode = "cloud" }, ErrUnknownMongo},
		{"zero timeout", func(c *Config) { c.StoreTimeout = 0 }, ErrInvalidTimeout},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, ErrInvalidLogLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestAllowOrigins(t *testing.T) {
	cfg := Config{CORSOrigins: "http://a.test ,, http://b.test"}
	assert.Equal(t, "http://a.test, http://b.test", cfg.AllowOrigins())
}
