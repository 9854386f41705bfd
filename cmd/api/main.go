package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emilythestrangee/cuoora/backend/internal/config"
	"github.com/emilythestrangee/cuoora/backend/internal/database"
	"github.com/emilythestrangee/cuoora/backend/internal/platform"
	"github.com/emilythestrangee/cuoora/backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.DB, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := database.NewRepository(db.GetDB())
	if err := repo.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("database migrations completed")

	network, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	logger.Info("network restored",
		"users", len(network.Users()),
		"questions", len(network.Questions()),
		"topics", len(network.Topics()),
	)

	p := platform.New(network, platform.Options{
		Store:  repo,
		Limits: platform.FeedLimits{Default: cfg.FeedDefaultSize, Max: cfg.FeedMaxSize},
		Logger: logger,
	})
	srv := server.New(cfg, p, db, logger).HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
