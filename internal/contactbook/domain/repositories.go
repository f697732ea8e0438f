package domain

import "context"

// ContactRepository defines the operations over the contacts table.
// Every call acquires its own store connection and releases it before returning.
type ContactRepository interface {
	Insert(ctx context.Context, contact *Contact) (int64, error)
	Update(ctx context.Context, contact *Contact) (WriteResult, error)
	Delete(ctx context.Context, id int64) (WriteResult, error)
	FindByNameContains(ctx context.Context, fragment string) ([]Contact, error)
	FindByID(ctx context.Context, id int64) ([]Contact, error)
	GetByID(ctx context.Context, id int64) (*Contact, error) // ErrNotFound when absent
	FindByGroup(ctx context.Context, groupID int64) ([]Contact, error)
	ListAll(ctx context.Context) ([]Contact, error) // order is store-defined
	CountAll(ctx context.Context) (int64, error)
	CountByGroup(ctx context.Context, groupID int64) (int64, error)
}

// GroupRepository defines the read-only lookups over the groups table.
type GroupRepository interface {
	GetGroupName(ctx context.Context, groupID int64) (string, error) // ErrNotFound when absent
	ListGroups(ctx context.Context) ([]Group, error)
}
