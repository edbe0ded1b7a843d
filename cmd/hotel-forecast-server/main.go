package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/hotel-forecast/internal/config"
	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/iwvelando/hotel-forecast/internal/project"
	"github.com/iwvelando/hotel-forecast/internal/server"
	"github.com/iwvelando/hotel-forecast/internal/store"
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}
	applyEnv(cfg)

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()
	projectStore, err := store.Open(ctx, logger, cfg.Store)
	if err != nil {
		logger.Fatal("failed to open project store",
			zap.String("op", "main"),
			zap.String("driver", cfg.Store.Driver),
			zap.Error(err),
		)
	}
	defer func() {
		if err := projectStore.Close(); err != nil {
			logger.Warn("failed to close project store", zap.String("op", "main"), zap.Error(err))
		}
	}()

	settings := config.NewSettingsHolder(config.DefaultSettings())
	if cfg.SettingsFile != "" {
		settings, err = config.WatchSettings(logger, cfg.SettingsFile)
		if err != nil {
			logger.Fatal("failed to load settings",
				zap.String("op", "main"),
				zap.String("file", cfg.SettingsFile),
				zap.Error(err),
			)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var limiter *server.RateLimiter
	if cfg.RateLimit.PerMinute > 0 {
		limiter = server.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
		defer limiter.Stop()
	}

	handler := server.NewHandler(logger, server.Options{
		MaxUploadSize: cfg.UploadSizeBytes(),
		Version:       version,
		Projects:      project.NewService(logger, projectStore),
		Settings:      settings,
		Registry:      registry,
		Limiter:       limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("op", "main"),
			zap.String("address", srv.Addr),
			zap.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.String("op", "main"), zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.String("op", "main"), zap.Error(err))
	}
}

// applyEnv lets STORE_DRIVER, DATABASE_URL and REDIS_ADDR override the store section.
func applyEnv(cfg *server.Config) {
	if driver := os.Getenv("STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	switch cfg.Store.Driver {
	case constants.StoreDriverPostgres:
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			cfg.Store.DSN = dsn
		}
	case constants.StoreDriverRedis:
		if addr := os.Getenv("REDIS_ADDR"); addr != "" {
			cfg.Store.DSN = addr
		}
	}
}
