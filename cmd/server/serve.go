package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/preventivatore3d/internal/config"
	"github.com/Simplici0/preventivatore3d/internal/db"
	"github.com/Simplici0/preventivatore3d/internal/logging"
	"github.com/Simplici0/preventivatore3d/internal/migrations"
	"github.com/Simplici0/preventivatore3d/internal/seed"
	"github.com/Simplici0/preventivatore3d/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the quoting HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()

			return withRuntime(ctx, func(cfg config.Config, database *sql.DB, logger *zap.Logger) error {
				if cfg.MigrateOnStart {
					if err := migrate(ctx, database); err != nil {
						return err
					}
				}
				if cfg.Seed {
					stats, err := seed.Run(ctx, database)
					if err != nil {
						return fmt.Errorf("seed database: %w", err)
					}
					zap.S().Infow("seed completed", "inserts", stats.Inserts, "updates", stats.Updates)
				}

				srv := newServer(store.New(database, logger), logger)
				return listenAndServe(ctx, cfg.Addr(), srv.routes())
			})
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(cfg config.Config, database *sql.DB, logger *zap.Logger) error {
				return migrate(cmd.Context(), database)
			})
		},
	}
}

// withRuntime loads configuration, installs the global logger and opens the
// database for the duration of fn.
func withRuntime(ctx context.Context, fn func(config.Config, *sql.DB, *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		zap.S().Errorw("failed to open database", "path", cfg.DBPath, "error", err)
		return err
	}
	defer database.Close()

	return fn(cfg, database, logger)
}

func migrate(ctx context.Context, database *sql.DB) error {
	applied, err := migrations.Up(ctx, database)
	if err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}
	version, err := migrations.Version(ctx, database)
	if err != nil {
		return err
	}
	zap.S().Infow("database migrated", "applied", applied, "version", version)
	return nil
}

func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
