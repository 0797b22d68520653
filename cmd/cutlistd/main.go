package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/cutlistpro/cutlist/internal/application"
	"github.com/cutlistpro/cutlist/internal/config"
	"github.com/cutlistpro/cutlist/internal/logging"
)

func main() {
	app := kingpin.New("cutlistd", "Cutting plan and quoting service for panel stock")
	configFile := app.Flag("config", "Path to YAML configuration file").String()
	address := app.Flag("address", "HTTP listen address, overrides config").String()
	catalogPath := app.Flag("catalog", "Path to YAML material catalog, overrides config").String()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	if *address != "" {
		cfg.HTTPServer.Address = *address
	}
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	service, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	service.Start()
	shutdown(service.Server(), cfg.HTTPServer.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
