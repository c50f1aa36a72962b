package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kevinke3/loket/config"
	"github.com/kevinke3/loket/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	static := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(static, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "css", "style.css"), []byte("body{}"), 0o644))

	return config.Config{
		Addr:         ":0",
		Store:        config.StoreMemory,
		StaticDir:    static,
		LogLevel:     "info",
		CORSOrigins:  "http://localhost:3000",
		StoreTimeout: time.Second,
	}
}

func TestNewAppServesRoutes(t *testing.T) {
	cfg := testConfig(t)
	store := database.NewMemoryStore()
	_, err := database.Seed(context.Background(), store, false, zap.NewNop())
	require.NoError(t, err)

	app, err := newApp(cfg, store, zap.NewNop())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/search?region=Northwest", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "David Chen")
	assert.NotContains(t, string(body), "Sarah Johnson")
}

func TestNewAppCORS(t *testing.T) {
	app, err := newApp(testConfig(t), database.NewMemoryStore(), zap.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodGet)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestNewAppLogsPanickingRequest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app, err := newApp(testConfig(t), database.NewMemoryStore(), zap.New(core))
	require.NoError(t, err)
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(500), entries[0].ContextMap()["status"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOKET_STORE", config.StoreFile)
	t.Setenv("LOKET_DATA_DIR", dir)
	t.Setenv("LOKET_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "seeded missing_persons")
	assert.Contains(t, out.String(), "seeded found_persons")
	assert.FileExists(t, filepath.Join(dir, "missing_persons.json"))
	assert.FileExists(t, filepath.Join(dir, "found_persons.json"))

	out.Reset()
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "nothing to seed")
}
