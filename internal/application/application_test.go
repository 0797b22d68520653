package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cutlistpro/cutlist/internal/config"
)

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTPServer.Address = ":8080"
	cfg.Optimizer.Strategy = "bottom-left-fill"
	cfg.Optimizer.KerfMm = 3
	cfg.Optimizer.AllowRotation = true
	cfg.Optimizer.MaxFreeRectangles = 256
	cfg.Pricing.WasteFactor = 0.15
	cfg.Pricing.LaborFactor = 0.30
	cfg.Pricing.OverheadFactor = 0.10
	cfg.Pricing.MarginFactor = 0.20
	return cfg
}

func TestNew_DefaultCatalog(t *testing.T) {
	app, err := New(baseConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.NotEmpty(t, app.Catalog())
	assert.Equal(t, ":8080", app.Server().Addr)
}

func TestNew_BarePortGetsColon(t *testing.T) {
	cfg := baseConfig()
	cfg.HTTPServer.Address = "9090"

	app, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ":9090", app.Server().Addr)
}

func TestNew_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
materials:
  - id: osb-11
    name: OSB 11mm
    thickness: 11
    price_per_unit: 45
    price_unit: m2
    standard_sizes:
      - width: 2440
        height: 1220
`), 0o644))

	cfg := baseConfig()
	cfg.CatalogPath = path

	app, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, app.Catalog(), 1)
	assert.Equal(t, "osb-11", app.Catalog()[0].ID)
}

func TestNew_RejectsBadDefaults(t *testing.T) {
	cfg := baseConfig()
	cfg.Optimizer.Strategy = "annealing"
	_, err := New(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "optimizer defaults")

	cfg = baseConfig()
	cfg.Pricing.MarginFactor = 1.5
	_, err = New(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "pricing defaults")

	cfg = baseConfig()
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "load material catalog")
}
