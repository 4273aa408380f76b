package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/pokedex/internal/config"
	"github.com/JonMunkholm/pokedex/internal/core"
	"github.com/JonMunkholm/pokedex/internal/logging"
	"github.com/JonMunkholm/pokedex/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	if err := run(context.Background(), cfg, logger); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repo := core.NewCSVRepository(cfg.Data.Path, core.LoaderOptions{
		ValidateStats: cfg.Data.ValidateStats,
		Logger:        logger,
	})

	if cfg.Data.WarmUp {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.Data.LoadTimeout)
		err := repo.Init(loadCtx)
		cancel()
		if err != nil {
			return err
		}
	}

	server := web.NewServer(repo, cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	g.Go(func() error {
		watchReload(gctx, repo, cfg)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// watchReload forces a dataset reload on every SIGHUP until ctx ends.
// A failed reload is logged and the previous snapshot keeps serving.
func watchReload(ctx context.Context, repo *core.CSVRepository, cfg *config.Config) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			reloadCtx, cancel := context.WithTimeout(ctx, cfg.Data.LoadTimeout)
			info, err := repo.Reload(reloadCtx)
			cancel()
			if err != nil {
				slog.Error("reload failed, keeping previous snapshot", "error", err)
				continue
			}
			slog.Info("dataset reloaded", "snapshot", info.ID, "rows", info.Rows)
		}
	}
}
