package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

var _ domain.GroupRepository = (*PgGroupRepository)(nil)

type PgGroupRepository struct {
	connect ConnectFunc
	logger  *slog.Logger
}

func NewPgGroupRepository(connect ConnectFunc, logger *slog.Logger) *PgGroupRepository {
	return &PgGroupRepository{connect: connect, logger: logger}
}

func (r *PgGroupRepository) GetGroupName(ctx context.Context, groupID int64) (string, error) {
	query := `SELECT COALESCE(nombreGrupo, '') FROM "groups" WHERE idGrupo = $1`
	var name string
	err := withConn(ctx, r.connect, r.logger, "GetGroupName", func(conn Conn) error {
		err := conn.QueryRow(ctx, query, groupID).Scan(&name)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (r *PgGroupRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	query := `SELECT idGrupo, COALESCE(nombreGrupo, '') FROM "groups" ORDER BY idGrupo`
	groups := make([]domain.Group, 0)
	err := withConn(ctx, r.connect, r.logger, "ListGroups", func(conn Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var g domain.Group
			if err := rows.Scan(&g.ID, &g.Name); err != nil {
				return err
			}
			groups = append(groups, g)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}
