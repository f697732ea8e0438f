package http

import "github.com/aradsms/contactbook/internal/contactbook/domain"

// --- Request DTOs ---

// ContactRequestDTO is the body of both create and update. Update replaces
// every field, so the same rules apply.
type ContactRequestDTO struct {
	Name            string `json:"name" validate:"required,max=100"`
	PaternalSurname string `json:"paternal_surname" validate:"max=100"`
	MaternalSurname string `json:"maternal_surname" validate:"max=100"`
	Phone           string `json:"phone" validate:"required,max=30"`
	GroupID         int64  `json:"group_id" validate:"required,gt=0"`
}

// --- Response DTOs ---

type ListContactsResponseDTO struct {
	Contacts []domain.Contact `json:"contacts"`
	Count    int              `json:"count"`
}

// TupleContactsResponseDTO carries contacts in positional form:
// [id, name, paternal_surname, maternal_surname, phone, group_id].
type TupleContactsResponseDTO struct {
	Contacts [][]string `json:"contacts"`
	Count    int        `json:"count"`
}

type CountResponseDTO struct {
	Count   int64  `json:"count"`
	GroupID *int64 `json:"group_id,omitempty"`
}

type WriteResponseDTO struct {
	ID           int64 `json:"id"`
	RowsAffected int64 `json:"rows_affected"`
}

type ListGroupsResponseDTO struct {
	Groups []domain.Group `json:"groups"`
}

type ErrorResponseDTO struct {
	Error string `json:"error"`
}
