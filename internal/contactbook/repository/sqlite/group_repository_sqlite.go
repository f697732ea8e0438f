package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

var _ domain.GroupRepository = (*GroupRepository)(nil)

type GroupRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewGroupRepository(db *sql.DB, logger *slog.Logger) *GroupRepository {
	return &GroupRepository{db: db, logger: logger}
}

func (r *GroupRepository) GetGroupName(ctx context.Context, groupID int64) (string, error) {
	var name string
	err := withConn(ctx, r.db, r.logger, "GetGroupName", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, `SELECT COALESCE(nombreGrupo, '') FROM "groups" WHERE idGrupo = ?`, groupID).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (r *GroupRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	groups := make([]domain.Group, 0)
	err := withConn(ctx, r.db, r.logger, "ListGroups", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `SELECT idGrupo, COALESCE(nombreGrupo, '') FROM "groups" ORDER BY idGrupo`)
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
