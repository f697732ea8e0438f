package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
	"github.com/aradsms/contactbook/internal/platform/database"
)

// Conn is the subset of *pgx.Conn the repositories use.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close(ctx context.Context) error
}

// ConnectFunc opens a connection that serves exactly one repository operation.
type ConnectFunc func(ctx context.Context) (Conn, error)

// FromConnector adapts a PgConnector to a ConnectFunc.
func FromConnector(c *database.PgConnector) ConnectFunc {
	return func(ctx context.Context) (Conn, error) {
		conn, err := c.Connect(ctx)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// withConn opens a connection, runs fn on it and closes it on every exit path.
// Dial failures become ErrConnection; anything fn returns other than
// domain.ErrNotFound becomes ErrExecution.
func withConn(ctx context.Context, connect ConnectFunc, logger *slog.Logger, op string, fn func(conn Conn) error) error {
	conn, err := connect(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Error connecting to store", "operation", op, "error", err)
		return domain.ConnectionError(op, err)
	}
	defer func() {
		if cerr := conn.Close(ctx); cerr != nil {
			logger.WarnContext(ctx, "Error closing store connection", "operation", op, "error", cerr)
		}
	}()

	if err := fn(conn); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		logger.ErrorContext(ctx, "Error executing statement", "operation", op, "error", err)
		return domain.ExecutionError(op, err)
	}
	return nil
}
