// Command webserver exposes the air quality dataset over HTTP: label and
// filter management, cross-tabulated statistics and rendered reports,
// plus health and prometheus endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"aircli/internal/config"
	"aircli/internal/dataset"
	"aircli/internal/infrastructure"
	transport "aircli/internal/transport/http"
)

func main() {
	header := flag.String("header", "Air Quality Report", "dataset display header (30 characters max)")
	preload := flag.Bool("preload", true, "load the configured data file at startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ds, err := dataset.New(*header, logger, dataset.Config{Placeholder: cfg.Report.Placeholder})
	if err != nil {
		logger.Error("invalid header", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *preload {
		count, err := ds.LoadFile(cfg.DataFilePath())
		if err != nil {
			// The API can still serve once a load succeeds over HTTP.
			logger.Warn("preload failed, starting with an empty dataset",
				slog.String("path", cfg.DataFilePath()),
				slog.String("error", err.Error()))
		} else {
			logger.Info("preloaded dataset", slog.Int("records", count))
		}
	}

	service := transport.NewDatasetService(ds, cfg, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      transport.NewRouter(service, cfg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
