// Package bootstrap turns configuration into ready repositories, shared by the
// HTTP service and the CLI.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/aradsms/contactbook/internal/contactbook/app"
	"github.com/aradsms/contactbook/internal/contactbook/domain"
	"github.com/aradsms/contactbook/internal/contactbook/repository/postgres"
	"github.com/aradsms/contactbook/internal/contactbook/repository/sqlite"
	"github.com/aradsms/contactbook/internal/platform/config"
	"github.com/aradsms/contactbook/internal/platform/database"
)

// Store bundles the repositories for the configured driver.
type Store struct {
	Contacts domain.ContactRepository
	Groups   domain.GroupRepository
	Driver   string
	Target   string

	ping  func(ctx context.Context) error
	close func() error
}

// OpenStore builds repositories for cfg.StoreDriver. For postgres nothing is
// dialed here; each repository call dials on its own.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		connector, err := database.NewPgConnector(cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		connect := postgres.FromConnector(connector)
		return &Store{
			Contacts: postgres.NewPgContactRepository(connect, logger),
			Groups:   postgres.NewPgGroupRepository(connect, logger),
			Driver:   cfg.StoreDriver,
			Target:   connector.Target(),
			ping:     connector.Ping,
			close:    func() error { return nil },
		}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Contacts: sqlite.NewContactRepository(db, logger),
			Groups:   sqlite.NewGroupRepository(db, logger),
			Driver:   cfg.StoreDriver,
			Target:   cfg.SQLitePath,
			ping:     pingSQLite(db),
			close:    db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func pingSQLite(db *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		return nil
	}
}

// Ping checks the store is reachable. Failures are reported as ErrConnection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ping(ctx); err != nil {
		return domain.ConnectionError("Ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.close()
}

// Application wraps the store's repositories in the application layer.
func (s *Store) Application(logger *slog.Logger, opts ...app.Option) *app.Application {
	return app.NewApplication(s.Contacts, s.Groups, logger, opts...)
}
