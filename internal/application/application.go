// Package application wires configuration, the material catalog and the
// HTTP surface into a runnable server.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/cutlistpro/cutlist/internal/api"
	"github.com/cutlistpro/cutlist/internal/config"
	"github.com/cutlistpro/cutlist/internal/costing"
	"github.com/cutlistpro/cutlist/internal/engine"
	"github.com/cutlistpro/cutlist/internal/model"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	catalog []model.Material
	handler *api.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application from the provided configuration.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	optimizerCfg := engine.Config{
		Strategy:          engine.StrategyName(cfg.Optimizer.Strategy),
		KerfMm:            cfg.Optimizer.KerfMm,
		AllowRotation:     cfg.Optimizer.AllowRotation,
		MaxFreeRectangles: cfg.Optimizer.MaxFreeRectangles,
	}
	if err := optimizerCfg.Validate(); err != nil {
		return nil, fmt.Errorf("optimizer defaults: %w", err)
	}

	factors := costing.Factors{
		Waste:    cfg.Pricing.WasteFactor,
		Labor:    cfg.Pricing.LaborFactor,
		Overhead: cfg.Pricing.OverheadFactor,
		Margin:   cfg.Pricing.MarginFactor,
	}
	if err := factors.Validate(); err != nil {
		return nil, fmt.Errorf("pricing defaults: %w", err)
	}

	handler := api.NewHandler(catalog, optimizerCfg, factors, logger)
	router := api.NewRouter(handler, logger,
		api.WithRequestLogging(cfg.HTTPServer.EnableRequestLog),
		api.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	)

	addr := cfg.HTTPServer.Address
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		catalog: catalog,
		handler: handler,
		logger:  logger,
		server:  server,
	}, nil
}

// Start runs the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
}

// Server returns the HTTP server for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Catalog returns the material catalog the server answers with.
func (a *App) Catalog() []model.Material {
	return a.catalog
}

func loadCatalog(path string) ([]model.Material, error) {
	if path == "" {
		return model.DefaultMaterials(), nil
	}
	materials, err := model.LoadMaterials(path)
	if err != nil {
		return nil, fmt.Errorf("load material catalog: %w", err)
	}
	return materials, nil
}
