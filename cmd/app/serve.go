package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"devis/cmd"
	httpadapter "devis/internal/adapters/in/http"
	"devis/internal/adapters/out/redisnotify"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newServeCmd(loadConfig func() (cmd.Config, error)) *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err = cfg.ValidateServing(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, migrate)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return c
}

func serve(ctx context.Context, cfg cmd.Config, migrate bool) error {
	logger := cfg.NewLogger()

	gormDB, err := openDB(cfg)
	if err != nil {
		return err
	}
	if migrate {
		if err = runMigrations(ctx, gormDB); err != nil {
			return err
		}
	}

	redisClient, err := redisnotify.NewClient(ctx, cfg.Redis())
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	objectStore, err := cmd.NewObjectStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect object store: %w", err)
	}

	app := cmd.NewCompositionRoot(cfg, gormDB, redisClient, objectStore, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	router := httpadapter.NewRouter(
		httpadapter.NewServer(app.CreateUseCases(), cfg.ValidationURLBase),
		httpadapter.RouterConfig{
			Logger:     logger,
			Registerer: registry,
			Gatherer:   registry,
			Health:     app.Health,
		},
	)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", cfg.HTTPPort)
		serveErr <- router.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}

func openDB(cfg cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return gormDB, nil
}
