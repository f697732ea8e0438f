package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aradsms/contactbook/internal/contactbook/bootstrap"
	"github.com/aradsms/contactbook/internal/contactbook/cli"
	"github.com/aradsms/contactbook/internal/contactbook/domain"
	"github.com/aradsms/contactbook/internal/platform/config"
)

// Exit codes: 1 for any failure, 2 when the target was not found, 3 when the
// store could not be reached.
const (
	exitFailure     = 1
	exitNotFound    = 2
	exitUnavailable = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(openService)
	if err := root.ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			os.Exit(exitNotFound)
		case errors.Is(err, domain.ErrConnection):
			os.Exit(exitUnavailable)
		default:
			os.Exit(exitFailure)
		}
	}
}

// openService loads configuration and opens the store for one command. Logs go
// to stderr so stdout stays parseable with --json.
func openService(ctx context.Context) (cli.Service, func(), error) {
	cfg, err := config.Load(cli.AppName)
	if err != nil {
		return nil, nil, err
	}
	// Repository info logs are noise on a terminal unless asked for explicitly.
	level := ""
	if os.Getenv("APP_LOG_LEVEL") == "" {
		level = "warn"
	}
	appLogger, closeLog, err := bootstrap.Logger(cfg, cli.AppName, level, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	store, err := bootstrap.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		_ = closeLog()
		return nil, nil, fmt.Errorf("%s store: %w", cfg.StoreDriver, err)
	}
	eventOpts, closeEvents, err := bootstrap.Events(cfg, cli.AppName, appLogger)
	if err != nil {
		store.Close()
		_ = closeLog()
		return nil, nil, err
	}
	release := func() {
		closeEvents()
		if err := store.Close(); err != nil {
			appLogger.Warn("Error closing store", "error", err)
		}
		_ = closeLog()
	}
	return store.Application(appLogger, eventOpts...), release, nil
}
