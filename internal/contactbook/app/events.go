package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

// Subjects contact change events are published on.
const (
	SubjectContactCreated = "contactbook.contact.created"
	SubjectContactUpdated = "contactbook.contact.updated"
	SubjectContactDeleted = "contactbook.contact.deleted"
)

// EventPublisher is satisfied by *messagebroker.NatsClient.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ContactEvent is the payload of every contact change event. Contact is nil
// for deletions.
type ContactEvent struct {
	ContactID  int64           `json:"contact_id"`
	Contact    *domain.Contact `json:"contact,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Option configures an Application.
type Option func(*Application)

// WithEventPublisher makes successful writes publish a ContactEvent.
func WithEventPublisher(p EventPublisher) Option {
	return func(a *Application) {
		a.publisher = p
	}
}

// publish runs after the write is already in the store, so failures are only
// logged.
func (a *Application) publish(ctx context.Context, subject string, ev ContactEvent) {
	if a.publisher == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	payload, err := json.Marshal(ev)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to marshal contact event", "subject", subject, "contact_id", ev.ContactID, "error", err)
		return
	}
	if err := a.publisher.Publish(ctx, subject, payload); err != nil {
		a.logger.ErrorContext(ctx, "Failed to publish contact event", "subject", subject, "contact_id", ev.ContactID, "error", err)
		return
	}
	a.logger.DebugContext(ctx, "Published contact event", "subject", subject, "contact_id", ev.ContactID)
}
