package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.Timeout)
	assert.True(t, cfg.HTTPServer.EnableRequestLog)
	assert.Equal(t, "bottom-left-fill", cfg.Optimizer.Strategy)
	assert.Equal(t, 3.0, cfg.Optimizer.KerfMm)
	assert.True(t, cfg.Optimizer.AllowRotation)
	assert.Equal(t, 256, cfg.Optimizer.MaxFreeRectangles)
	assert.Equal(t, 0.15, cfg.Pricing.WasteFactor)
	assert.Equal(t, 0.20, cfg.Pricing.MarginFactor)
	assert.Equal(t, 25.0, cfg.RateLimit.RPS)
	assert.Equal(t, 50, cfg.RateLimit.Burst)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
env: local
http_server:
  address: "127.0.0.1:9090"
  timeout: 5s
catalog_path: /etc/cutlist/materials.yaml
optimizer:
  strategy: guillotine-split
  kerf_mm: 4.5
  max_free_rectangles: 128
pricing:
  waste_factor: 0.10
rate_limit:
  rps: 100
  burst: 200
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, "/etc/cutlist/materials.yaml", cfg.CatalogPath)
	assert.Equal(t, "guillotine-split", cfg.Optimizer.Strategy)
	assert.Equal(t, 4.5, cfg.Optimizer.KerfMm)
	assert.Equal(t, 128, cfg.Optimizer.MaxFreeRectangles)
	assert.Equal(t, 0.10, cfg.Pricing.WasteFactor)
	assert.Equal(t, 100.0, cfg.RateLimit.RPS)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ADDRESS", ":3000")
	t.Setenv("KERF_MM", "2.2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPServer.Address)
	assert.Equal(t, 2.2, cfg.Optimizer.KerfMm)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "optimizer:\n  kerf_mm: -1\n"))
	assert.ErrorContains(t, err, "kerf")

	_, err = Load(writeConfig(t, "rate_limit:\n  rps: -5\n"))
	assert.ErrorContains(t, err, "rps")

	_, err = Load(writeConfig(t, "optimizer:\n  max_free_rectangles: -2\n"))
	assert.ErrorContains(t, err, "max free rectangles")
}
