// Package app wires configuration, storage and the HTTP server into a
// running almanac service.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/internal/server"
	"github.com/chrissnell/skyalmanac/internal/store"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/sky"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until a signal arrives or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	if cfg.Log.File != "" {
		lf, err := log.AttachFile(log.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer lf.Close()
	}

	st, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer st.Close()

	years, err := st.Years(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored years: %w", err)
	}
	if len(years) == 0 {
		a.logger.Warnw("storage holds no year data; run almanac-gen first", "backend", cfg.Storage.Backend)
	} else {
		a.logger.Infow("storage ready", "backend", cfg.Storage.Backend, "first_year", years[0], "last_year", years[len(years)-1])
	}

	facts, err := server.LoadFacts(cfg.Storage.FactsFile)
	if err != nil {
		return fmt.Errorf("failed to load facts: %w", err)
	}

	loc, err := cfg.Location.Location()
	if err != nil {
		return fmt.Errorf("failed to load time zone: %w", err)
	}
	engine := sky.NewEngine(cfg.Tuning).WithObserver(sky.Observer{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
		Location:  loc,
	})

	srv := server.New(ctx, &wg, cfg.Server, st, engine, facts)
	if err := srv.Start(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
