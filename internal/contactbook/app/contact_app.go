package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

// Application is the entry point both the HTTP API and the CLI call into.
// It adds metrics, logging and change events around the repositories. No
// validation and no group existence check happen here; the store's
// constraints are authoritative.
type Application struct {
	contactRepo domain.ContactRepository
	groupRepo   domain.GroupRepository
	publisher   EventPublisher
	logger      *slog.Logger
}

// NewApplication creates a new Application instance.
func NewApplication(contactRepo domain.ContactRepository, groupRepo domain.GroupRepository, logger *slog.Logger, opts ...Option) *Application {
	a := &Application{
		contactRepo: contactRepo,
		groupRepo:   groupRepo,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// --- Contact writes ---

// CreateContact inserts a contact and returns it with the store-assigned ID.
func (a *Application) CreateContact(ctx context.Context, name, paternalSurname, maternalSurname, phone string, groupID int64) (*domain.Contact, error) {
	start := time.Now()
	ct := domain.NewContact(name, paternalSurname, maternalSurname, phone, groupID)
	_, err := a.contactRepo.Insert(ctx, ct)
	observe("Insert", start, outcomeOf(err))
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}
	a.publish(ctx, SubjectContactCreated, ContactEvent{ContactID: ct.ID, Contact: ct})
	return ct, nil
}

// UpdateContact replaces every field of the contact identified by ct.ID.
func (a *Application) UpdateContact(ctx context.Context, ct *domain.Contact) (domain.WriteResult, error) {
	start := time.Now()
	res, err := a.contactRepo.Update(ctx, ct)
	observe("Update", start, writeOutcome(res, err))
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("updating contact %d: %w", ct.ID, err)
	}
	if res.Matched() {
		a.publish(ctx, SubjectContactUpdated, ContactEvent{ContactID: ct.ID, Contact: ct})
	}
	return res, nil
}

// DeleteContact removes the contact with the given ID.
func (a *Application) DeleteContact(ctx context.Context, id int64) (domain.WriteResult, error) {
	start := time.Now()
	res, err := a.contactRepo.Delete(ctx, id)
	observe("Delete", start, writeOutcome(res, err))
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("deleting contact %d: %w", id, err)
	}
	if res.Matched() {
		a.publish(ctx, SubjectContactDeleted, ContactEvent{ContactID: id})
	}
	return res, nil
}

func writeOutcome(res domain.WriteResult, err error) string {
	if err == nil && !res.Matched() {
		return outcomeNoMatch
	}
	return outcomeOf(err)
}

// --- Contact reads ---

func (a *Application) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	start := time.Now()
	ct, err := a.contactRepo.GetByID(ctx, id)
	observe("GetByID", start, outcomeOf(err))
	if err != nil {
		return nil, fmt.Errorf("getting contact %d: %w", id, err)
	}
	return ct, nil
}

// FindContactsByID keeps the list-shaped lookup for callers that expect it.
func (a *Application) FindContactsByID(ctx context.Context, id int64) ([]domain.Contact, error) {
	return a.readContacts(ctx, "FindByID", func() ([]domain.Contact, error) {
		return a.contactRepo.FindByID(ctx, id)
	})
}

func (a *Application) SearchContacts(ctx context.Context, fragment string) ([]domain.Contact, error) {
	return a.readContacts(ctx, "FindByNameContains", func() ([]domain.Contact, error) {
		return a.contactRepo.FindByNameContains(ctx, fragment)
	})
}

func (a *Application) ListContactsInGroup(ctx context.Context, groupID int64) ([]domain.Contact, error) {
	return a.readContacts(ctx, "FindByGroup", func() ([]domain.Contact, error) {
		return a.contactRepo.FindByGroup(ctx, groupID)
	})
}

func (a *Application) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return a.readContacts(ctx, "ListAll", func() ([]domain.Contact, error) {
		return a.contactRepo.ListAll(ctx)
	})
}

func (a *Application) readContacts(ctx context.Context, op string, read func() ([]domain.Contact, error)) ([]domain.Contact, error) {
	start := time.Now()
	contacts, err := read()
	observe(op, start, outcomeOf(err))
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	a.logger.DebugContext(ctx, "Contacts read", "operation", op, "count", len(contacts))
	return contacts, nil
}

// --- Counts and groups ---

func (a *Application) CountContacts(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := a.contactRepo.CountAll(ctx)
	observe("CountAll", start, outcomeOf(err))
	return n, err
}

func (a *Application) CountContactsInGroup(ctx context.Context, groupID int64) (int64, error) {
	start := time.Now()
	n, err := a.contactRepo.CountByGroup(ctx, groupID)
	observe("CountByGroup", start, outcomeOf(err))
	return n, err
}

func (a *Application) GroupName(ctx context.Context, groupID int64) (string, error) {
	start := time.Now()
	name, err := a.groupRepo.GetGroupName(ctx, groupID)
	observe("GetGroupName", start, outcomeOf(err))
	return name, err
}

func (a *Application) ListGroups(ctx context.Context) ([]domain.Group, error) {
	start := time.Now()
	groups, err := a.groupRepo.ListGroups(ctx)
	observe("ListGroups", start, outcomeOf(err))
	return groups, err
}

// GroupSummary returns a group's name with the number of contacts in it.
// The two lookups run on separate connections, so the pair is not a snapshot.
func (a *Application) GroupSummary(ctx context.Context, groupID int64) (*domain.GroupSummary, error) {
	name, err := a.GroupName(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("group %d: %w", groupID, err)
	}
	n, err := a.CountContactsInGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("counting contacts in group %d: %w", groupID, err)
	}
	return &domain.GroupSummary{
		Group:        domain.Group{ID: groupID, Name: name},
		ContactCount: n,
	}, nil
}
