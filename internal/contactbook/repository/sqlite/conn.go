package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

// withConn checks out a dedicated connection for one operation and releases it
// on every exit path. With idle pooling disabled (see database.OpenSQLite) the
// release closes the underlying SQLite handle.
func withConn(ctx context.Context, db *sql.DB, logger *slog.Logger, op string, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Error connecting to store", "operation", op, "error", err)
		return domain.ConnectionError(op, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
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
