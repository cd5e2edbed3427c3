package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivals-dev/rivals/backend/internal/router"
	"github.com/rivals-dev/rivals/backend/internal/setup"
	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/config"
	"github.com/rivals-dev/rivals/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	if err := run(cfg); err != nil {
		logger.Log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	deps := setup.SetupDependencies(cfg, clock.Real{})
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Log.Error("failed to close dependencies", "error", err)
		}
	}()
	deps.StartBackground(ctx)

	srv := &http.Server{
		Addr:         cfg.Public.Http.Addr,
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Public.Http.ReadTimeout,
		WriteTimeout: cfg.Public.Http.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Public.Http.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
