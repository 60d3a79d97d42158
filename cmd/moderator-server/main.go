// Package main provides the moderator dashboard server entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/minely/moderator/pkg/audit"
	"github.com/minely/moderator/pkg/cache"
	"github.com/minely/moderator/pkg/config"
	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/database"
	"github.com/minely/moderator/pkg/metrics"
	"github.com/minely/moderator/pkg/records"
	"github.com/minely/moderator/pkg/server"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Initialize glog for backwards compatibility
	_ = flag.Set("logtostderr", "true")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moderator-server",
		Short: "Serve the MineLy moderator dashboard",
		Long: `moderator-server serves the mining safety moderator dashboard.

Settings come from flags, MODERATOR_* environment variables (for example
MODERATOR_DATABASE_DSN) and an optional YAML file passed with --config.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			run(cfg)
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(cfg config.Config) {
	logger, err := config.NewLogger(os.Stdout, cfg.Log)
	if err != nil {
		glog.Fatalf("Failed to create logger: %v", err)
	}
	slog.SetDefault(logger)

	logger.Info("starting moderator server",
		"listen", cfg.Listen,
		"seedFile", cfg.SeedFile,
		"database", cfg.Database.Type,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	ds, err := seedSource(cfg, logger).Load(ctx)
	if err != nil {
		glog.Fatalf("Failed to load records: %v", err)
	}
	logger.Info("loaded records",
		"checklists", len(ds.Checklists),
		"reports", len(ds.Reports),
		"users", len(ds.Users),
		"videos", len(ds.Videos),
	)

	db, err := database.Open(cfg.Database)
	if err != nil {
		glog.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	m := metrics.New()
	cacheManager := cache.NewManager(cfg.Cache)

	boardOpts := []dashboard.Option{
		dashboard.WithLogger(logger),
		dashboard.WithObserver(m),
	}
	if cacheManager != nil {
		boardOpts = append(boardOpts, dashboard.WithObserver(server.CacheInvalidator(cacheManager)))
		logger.Info("response caching enabled", "ttl", cfg.Cache.TTL, "maxSize", cfg.Cache.MaxSize)
	}

	serverOpts := []server.Option{
		server.WithLogger(logger),
		server.WithMetrics(m),
		server.WithCache(cacheManager),
		server.WithDatabase(db),
		server.WithCORSOrigins(cfg.CORS.AllowedOrigins),
	}

	if cfg.Audit.Enabled {
		history := audit.NewStore(db)
		if err := history.AutoMigrate(); err != nil {
			glog.Fatalf("Failed to migrate moderation history: %v", err)
		}
		boardOpts = append(boardOpts, dashboard.WithObserver(audit.NewRecorder(history, logger)))
		serverOpts = append(serverOpts, server.WithHistory(history))

		if cfg.Audit.RetentionDays > 0 {
			go audit.NewRetentionWorker(history, cfg.Audit.RetentionDays, logger).Run(ctx)
		}
		logger.Info("moderation history enabled", "retentionDays", cfg.Audit.RetentionDays)
	}

	board, err := dashboard.NewBoard(ds, boardOpts...)
	if err != nil {
		glog.Fatalf("Failed to build dashboard: %v", err)
	}
	if err := m.RegisterBoard(board); err != nil {
		glog.Fatalf("Failed to register board metrics: %v", err)
	}

	srv, err := server.New(board, serverOpts...)
	if err != nil {
		glog.Fatalf("Failed to create server: %v", err)
	}

	// Create HTTP server with graceful shutdown
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatalf("HTTP server error: %v", err)
		}
	}()

	logger.Info("moderator server ready", "listen", cfg.Listen)

	// Wait for shutdown signal
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("moderator server stopped")
}

func seedSource(cfg config.Config, logger *slog.Logger) records.Source {
	if cfg.SeedFile == "" {
		return records.StaticSource{Now: time.Now}
	}
	src, err := records.NewFileSource(cfg.SeedFile)
	if err != nil {
		glog.Fatalf("Invalid seed file: %v", err)
	}
	logger.Info("loading seed file", "path", src.Path())
	return src
}
