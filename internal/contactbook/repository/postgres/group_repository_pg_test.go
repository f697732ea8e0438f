package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

func setupGroupTest(t *testing.T) (*PgGroupRepository, pgxmock.PgxConnIface) {
	mockConn, err := pgxmock.NewConn()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	connect := func(ctx context.Context) (Conn, error) { return mockConn, nil }
	return NewPgGroupRepository(connect, logger), mockConn
}

func TestPgGroupRepository_GetGroupName(t *testing.T) {
	repo, mockConn := setupGroupTest(t)
	selectSQL := `SELECT COALESCE\(nombreGrupo, ''\) FROM "groups" WHERE idGrupo = \$1`

	t.Run("Found", func(t *testing.T) {
		mockConn.ExpectQuery(selectSQL).WithArgs(int64(1)).
			WillReturnRows(mockConn.NewRows([]string{"nombregrupo"}).AddRow("Familia"))
		mockConn.ExpectClose()

		name, err := repo.GetGroupName(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Familia", name)
		assert.NoError(t, mockConn.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockConn.ExpectQuery(selectSQL).WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)
		mockConn.ExpectClose()

		name, err := repo.GetGroupName(context.Background(), 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, name)
		assert.NoError(t, mockConn.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		mockConn.ExpectQuery(selectSQL).WithArgs(int64(1)).WillReturnError(errors.New("database error"))
		mockConn.ExpectClose()

		_, err := repo.GetGroupName(context.Background(), 1)
		assert.ErrorIs(t, err, domain.ErrExecution)
		assert.NoError(t, mockConn.ExpectationsWereMet())
	})
}

func TestPgGroupRepository_ListGroups(t *testing.T) {
	repo, mockConn := setupGroupTest(t)

	mockConn.ExpectQuery(`SELECT idGrupo, COALESCE\(nombreGrupo, ''\) FROM "groups" ORDER BY idGrupo`).
		WillReturnRows(mockConn.NewRows([]string{"idgrupo", "nombregrupo"}).
			AddRow(int64(1), "Familia").
			AddRow(int64(2), "Trabajo"))
	mockConn.ExpectClose()

	groups, err := repo.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Group{{ID: 1, Name: "Familia"}, {ID: 2, Name: "Trabajo"}}, groups)
	assert.NoError(t, mockConn.ExpectationsWereMet())
}

func TestPgGroupRepository_ConnectionFailure(t *testing.T) {
	repo := NewPgGroupRepository(failingConnect(errors.New("no route to host")), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := repo.ListGroups(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnection)
}
