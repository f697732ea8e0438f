package domain

import "strconv"

// Contact is one row of the contacts table.
type Contact struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname"`
	Phone           string `json:"phone"`
	GroupID         int64  `json:"group_id"`
}

// NewContact builds a contact that has not been stored yet (ID is zero until
// the store assigns one on insert).
func NewContact(name, paternalSurname, maternalSurname, phone string, groupID int64) *Contact {
	return &Contact{
		Name:            name,
		PaternalSurname: paternalSurname,
		MaternalSurname: maternalSurname,
		Phone:           phone,
		GroupID:         groupID,
	}
}

// Tuple returns the positional, all-text shape existing consumers expect:
// [id, name, paternalSurname, maternalSurname, phone, groupId].
func (c Contact) Tuple() []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		c.PaternalSurname,
		c.MaternalSurname,
		c.Phone,
		strconv.FormatInt(c.GroupID, 10),
	}
}

// Tuples converts a result set to positional tuples.
func Tuples(contacts []Contact) [][]string {
	out := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Tuple())
	}
	return out
}

// Group is one row of the groups table.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GroupSummary pairs a group with how many contacts reference it.
type GroupSummary struct {
	Group
	ContactCount int64 `json:"contact_count"`
}

// WriteResult reports the outcome of an update or delete. RowsAffected == 0
// means no row matched the id; it is not an error.
type WriteResult struct {
	RowsAffected int64 `json:"rows_affected"`
}

// Matched reports whether the write touched at least one row.
func (r WriteResult) Matched() bool {
	return r.RowsAffected > 0
}
