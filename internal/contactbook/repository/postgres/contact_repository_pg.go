package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
	"github.com/aradsms/contactbook/internal/platform/database"
)

// contactColumns is the select list in Contact field order. NULL text reads as
// "" and a NULL group as 0.
const contactColumns = `idContacto, COALESCE(nombre, ''), COALESCE(apellidoPaterno, ''), COALESCE(apellidoMaterno, ''), COALESCE(telefono, ''), COALESCE(idGrupo, 0)`

var _ domain.ContactRepository = (*PgContactRepository)(nil)

type PgContactRepository struct {
	connect ConnectFunc
	logger  *slog.Logger
}

func NewPgContactRepository(connect ConnectFunc, logger *slog.Logger) *PgContactRepository {
	return &PgContactRepository{connect: connect, logger: logger}
}

func (r *PgContactRepository) Insert(ctx context.Context, ct *domain.Contact) (int64, error) {
	query := `
		INSERT INTO contacts (nombre, telefono, idGrupo, apellidoPaterno, apellidoMaterno)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING idContacto
	`
	var id int64
	err := withConn(ctx, r.connect, r.logger, "Insert", func(conn Conn) error {
		return conn.QueryRow(ctx, query,
			ct.Name, ct.Phone, ct.GroupID, ct.PaternalSurname, ct.MaternalSurname,
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	ct.ID = id
	r.logger.InfoContext(ctx, "Contact created successfully", "contact_id", id, "group_id", ct.GroupID)
	return id, nil
}

func (r *PgContactRepository) Update(ctx context.Context, ct *domain.Contact) (domain.WriteResult, error) {
	query := `
		UPDATE contacts
		SET nombre = $1, telefono = $2, idGrupo = $3, apellidoPaterno = $4, apellidoMaterno = $5
		WHERE idContacto = $6
	`
	var res domain.WriteResult
	err := withConn(ctx, r.connect, r.logger, "Update", func(conn Conn) error {
		tag, err := conn.Exec(ctx, query,
			ct.Name, ct.Phone, ct.GroupID, ct.PaternalSurname, ct.MaternalSurname, ct.ID,
		)
		res.RowsAffected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return domain.WriteResult{}, err
	}
	if !res.Matched() {
		r.logger.InfoContext(ctx, "No contact matched id for update", "contact_id", ct.ID)
		return res, nil
	}
	r.logger.InfoContext(ctx, "Contact updated successfully", "contact_id", ct.ID)
	return res, nil
}

func (r *PgContactRepository) Delete(ctx context.Context, id int64) (domain.WriteResult, error) {
	query := `DELETE FROM contacts WHERE idContacto = $1`
	var res domain.WriteResult
	err := withConn(ctx, r.connect, r.logger, "Delete", func(conn Conn) error {
		tag, err := conn.Exec(ctx, query, id)
		res.RowsAffected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return domain.WriteResult{}, err
	}
	if !res.Matched() {
		r.logger.InfoContext(ctx, "No contact matched id for delete", "contact_id", id)
		return res, nil
	}
	r.logger.InfoContext(ctx, "Contact deleted successfully", "contact_id", id)
	return res, nil
}

// FindByNameContains matches fragment literally anywhere in the name. LIKE is
// case-sensitive in PostgreSQL.
func (r *PgContactRepository) FindByNameContains(ctx context.Context, fragment string) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE nombre LIKE $1 ESCAPE '\'`
	return r.queryContacts(ctx, "FindByNameContains", query, database.ContainsPattern(fragment))
}

func (r *PgContactRepository) FindByID(ctx context.Context, id int64) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE idContacto = $1`
	return r.queryContacts(ctx, "FindByID", query, id)
}

func (r *PgContactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE idContacto = $1`
	ct := &domain.Contact{}
	err := withConn(ctx, r.connect, r.logger, "GetByID", func(conn Conn) error {
		err := conn.QueryRow(ctx, query, id).Scan(
			&ct.ID, &ct.Name, &ct.PaternalSurname, &ct.MaternalSurname, &ct.Phone, &ct.GroupID,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.DebugContext(ctx, "Contact not found", "contact_id", id)
		}
		return nil, err
	}
	return ct, nil
}

func (r *PgContactRepository) FindByGroup(ctx context.Context, groupID int64) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE idGrupo = $1`
	return r.queryContacts(ctx, "FindByGroup", query, groupID)
}

func (r *PgContactRepository) ListAll(ctx context.Context) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	return r.queryContacts(ctx, "ListAll", query)
}

func (r *PgContactRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountAll", `SELECT COUNT(*) FROM contacts`)
}

func (r *PgContactRepository) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	return r.count(ctx, "CountByGroup", `SELECT COUNT(*) FROM contacts WHERE idGrupo = $1`, groupID)
}

func (r *PgContactRepository) queryContacts(ctx context.Context, op, query string, args ...any) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := withConn(ctx, r.connect, r.logger, op, func(conn Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		contacts, err = scanContacts(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "Contacts fetched", "operation", op, "count", len(contacts))
	return contacts, nil
}

func (r *PgContactRepository) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	err := withConn(ctx, r.connect, r.logger, op, func(conn Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func scanContacts(rows pgx.Rows) ([]domain.Contact, error) {
	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		var ct domain.Contact
		if err := rows.Scan(
			&ct.ID, &ct.Name, &ct.PaternalSurname, &ct.MaternalSurname, &ct.Phone, &ct.GroupID,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}
