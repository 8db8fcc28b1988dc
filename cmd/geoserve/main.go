package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"geolocations/internal/config"
	"geolocations/internal/dataset"
	"geolocations/internal/http/server"
	"geolocations/internal/otel"
	"geolocations/internal/service"
)

// @title Geo Locations fixture API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := cfg.Log.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "geoserve", logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	src, err := dataset.NewSource(cfg.Dataset)
	if err != nil {
		logger.Error("failed to open dataset", "source", cfg.Dataset.Source, "error", err)
		os.Exit(1)
	}
	geoSvc := service.NewGeoService(dataset.New(src))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := server.New(server.Options{
		Prefix:   cfg.Prefix,
		Service:  geoSvc,
		Registry: reg,
	})
	if err != nil {
		logger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("geoserve listening", "addr", addr, "prefix", cfg.Prefix, "dataset", cfg.Dataset.Source)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown", "error", err)
	}
}
