package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
	"github.com/aradsms/contactbook/internal/platform/database"
)

const contactColumns = `idContacto, COALESCE(nombre, ''), COALESCE(apellidoPaterno, ''), COALESCE(apellidoMaterno, ''), COALESCE(telefono, ''), COALESCE(idGrupo, 0)`

var _ domain.ContactRepository = (*ContactRepository)(nil)

// ContactRepository stores contacts in a local SQLite file.
type ContactRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewContactRepository(db *sql.DB, logger *slog.Logger) *ContactRepository {
	return &ContactRepository{db: db, logger: logger}
}

func (r *ContactRepository) Insert(ctx context.Context, ct *domain.Contact) (int64, error) {
	query := `
		INSERT INTO contacts (nombre, telefono, idGrupo, apellidoPaterno, apellidoMaterno)
		VALUES (?, ?, ?, ?, ?)
	`
	var id int64
	err := withConn(ctx, r.db, r.logger, "Insert", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query,
			ct.Name, ct.Phone, ct.GroupID, ct.PaternalSurname, ct.MaternalSurname,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	ct.ID = id
	r.logger.InfoContext(ctx, "Contact created successfully", "contact_id", id, "group_id", ct.GroupID)
	return id, nil
}

func (r *ContactRepository) Update(ctx context.Context, ct *domain.Contact) (domain.WriteResult, error) {
	query := `
		UPDATE contacts
		SET nombre = ?, telefono = ?, idGrupo = ?, apellidoPaterno = ?, apellidoMaterno = ?
		WHERE idContacto = ?
	`
	res, err := r.exec(ctx, "Update", query,
		ct.Name, ct.Phone, ct.GroupID, ct.PaternalSurname, ct.MaternalSurname, ct.ID,
	)
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

func (r *ContactRepository) Delete(ctx context.Context, id int64) (domain.WriteResult, error) {
	res, err := r.exec(ctx, "Delete", `DELETE FROM contacts WHERE idContacto = ?`, id)
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

// FindByNameContains matches fragment literally anywhere in the name. SQLite's
// LIKE ignores case for ASCII letters only.
func (r *ContactRepository) FindByNameContains(ctx context.Context, fragment string) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE nombre LIKE ? ESCAPE '\'`
	return r.queryContacts(ctx, "FindByNameContains", query, database.ContainsPattern(fragment))
}

func (r *ContactRepository) FindByID(ctx context.Context, id int64) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE idContacto = ?`
	return r.queryContacts(ctx, "FindByID", query, id)
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE idContacto = ?`
	ct := &domain.Contact{}
	err := withConn(ctx, r.db, r.logger, "GetByID", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, id).Scan(
			&ct.ID, &ct.Name, &ct.PaternalSurname, &ct.MaternalSurname, &ct.Phone, &ct.GroupID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return ct, nil
}

func (r *ContactRepository) FindByGroup(ctx context.Context, groupID int64) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE idGrupo = ?`
	return r.queryContacts(ctx, "FindByGroup", query, groupID)
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]domain.Contact, error) {
	return r.queryContacts(ctx, "ListAll", `SELECT `+contactColumns+` FROM contacts`)
}

func (r *ContactRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountAll", `SELECT COUNT(*) FROM contacts`)
}

func (r *ContactRepository) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	return r.count(ctx, "CountByGroup", `SELECT COUNT(*) FROM contacts WHERE idGrupo = ?`, groupID)
}

func (r *ContactRepository) exec(ctx context.Context, op, query string, args ...any) (domain.WriteResult, error) {
	var out domain.WriteResult
	err := withConn(ctx, r.db, r.logger, op, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		out.RowsAffected, err = res.RowsAffected()
		return err
	})
	return out, err
}

func (r *ContactRepository) queryContacts(ctx context.Context, op, query string, args ...any) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := withConn(ctx, r.db, r.logger, op, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		contacts = make([]domain.Contact, 0)
		for rows.Next() {
			var ct domain.Contact
			if err := rows.Scan(
				&ct.ID, &ct.Name, &ct.PaternalSurname, &ct.MaternalSurname, &ct.Phone, &ct.GroupID,
			); err != nil {
				return err
			}
			contacts = append(contacts, ct)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *ContactRepository) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	err := withConn(ctx, r.db, r.logger, op, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
