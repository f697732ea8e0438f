package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/aradsms/contactbook/internal/contactbook/adapters/http"
	"github.com/aradsms/contactbook/internal/contactbook/bootstrap"
	"github.com/aradsms/contactbook/internal/platform/config"
)

const (
	serviceName     = "contactbook_service"
	shutdownTimeout = 15 * time.Second
)

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger, closeLog, err := bootstrap.Logger(cfg, serviceName, "", os.Stdout)
	if err != nil {
		slog.Error("Failed to initialize logger", "service", serviceName, "error", err)
		os.Exit(1)
	}
	defer closeLog()
	appLogger.Info("Starting service...")
	appLogger.Info("Configuration loaded",
		"log_level", cfg.LogLevel,
		"log_file", cfg.LogFile,
		"store_driver", cfg.StoreDriver,
		"http_port", cfg.HTTPPort,
		"nats_enabled", cfg.NATSURL != "",
	)

	store, err := bootstrap.OpenStore(mainCtx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	pingCtx, pingCancel := context.WithTimeout(mainCtx, cfg.ConnectTimeout())
	err = store.Ping(pingCtx)
	pingCancel()
	if err != nil {
		appLogger.Error("Store is not reachable", "driver", store.Driver, "target", store.Target, "error", err)
		os.Exit(1)
	}
	appLogger.Info("Store reachable", "driver", store.Driver, "target", store.Target)

	eventOpts, closeEvents, err := bootstrap.Events(cfg, serviceName, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer closeEvents()

	application := store.Application(appLogger, eventOpts...)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpAdapter.NewRouter(application, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, groupCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("HTTP server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", "error", err)
			return fmt.Errorf("http server on %s: %w", server.Addr, err)
		}
		appLogger.Info("HTTP server stopped.")
		return nil
	})

	g.Go(func() error {
		stopSignal := make(chan os.Signal, 1)
		signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(stopSignal)
		select {
		case sig := <-stopSignal:
			appLogger.Info("Received termination signal", "signal", sig.String())
			mainCancel()
			return nil
		case <-groupCtx.Done():
			return nil
		}
	})

	g.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Initiating graceful shutdown of HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP server shutdown failed", "error", err)
			return err
		}
		return nil
	})

	appLogger.Info("Service is ready and running.")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Service group encountered an error", "error", err)
	}
	appLogger.Info("Service shutdown complete.")
}
