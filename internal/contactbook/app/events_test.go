package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

// MockPublisher records every published message by subject.
type MockPublisher struct {
	PublishFunc       func(ctx context.Context, subject string, data []byte) error
	PublishedMessages map[string][]byte
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, subject, data)
	}
	if m.PublishedMessages == nil {
		m.PublishedMessages = make(map[string][]byte)
	}
	m.PublishedMessages[subject] = data
	return nil
}

func setupEventTest(t *testing.T) (*Application, *MockContactRepository, *MockPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	contacts := new(MockContactRepository)
	publisher := &MockPublisher{}
	return NewApplication(contacts, new(MockGroupRepository), logger, WithEventPublisher(publisher)), contacts, publisher
}

func TestEvents_CreatePublishesContact(t *testing.T) {
	application, contacts, publisher := setupEventTest(t)
	ctx := context.Background()
	contacts.On("Insert", ctx, mock.AnythingOfType("*domain.Contact")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Contact).ID = 31
	}).Return(int64(31), nil).Once()

	_, err := application.CreateContact(ctx, "Ana", "Lopez", "Diaz", "555-1111", 1)
	require.NoError(t, err)

	raw, ok := publisher.PublishedMessages[SubjectContactCreated]
	require.True(t, ok)
	var ev ContactEvent
	require.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, int64(31), ev.ContactID)
	require.NotNil(t, ev.Contact)
	assert.Equal(t, "555-1111", ev.Contact.Phone)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestEvents_OnlyMatchedWritesPublish(t *testing.T) {
	application, contacts, publisher := setupEventTest(t)
	ctx := context.Background()
	contacts.On("Update", ctx, mock.Anything).Return(domain.WriteResult{}, nil).Once()
	contacts.On("Delete", ctx, int64(3)).Return(domain.WriteResult{RowsAffected: 1}, nil).Once()

	_, err := application.UpdateContact(ctx, &domain.Contact{ID: 404})
	require.NoError(t, err)
	_, err = application.DeleteContact(ctx, 3)
	require.NoError(t, err)

	assert.NotContains(t, publisher.PublishedMessages, SubjectContactUpdated)
	require.Contains(t, publisher.PublishedMessages, SubjectContactDeleted)
	assert.Contains(t, string(publisher.PublishedMessages[SubjectContactDeleted]), `"contact_id":3`)
	assert.NotContains(t, string(publisher.PublishedMessages[SubjectContactDeleted]), `"contact"`)
}

func TestEvents_FailedWriteDoesNotPublish(t *testing.T) {
	application, contacts, publisher := setupEventTest(t)
	ctx := context.Background()
	contacts.On("Insert", ctx, mock.Anything).Return(int64(0), domain.ExecutionError("Insert", errors.New("constraint"))).Once()

	_, err := application.CreateContact(ctx, "Ana", "", "", "1", 9)
	require.Error(t, err)
	assert.Empty(t, publisher.PublishedMessages)
}

func TestEvents_PublishFailureDoesNotFailWrite(t *testing.T) {
	application, contacts, publisher := setupEventTest(t)
	ctx := context.Background()
	publisher.PublishFunc = func(context.Context, string, []byte) error {
		return errors.New("nats: connection closed")
	}
	contacts.On("Delete", ctx, int64(5)).Return(domain.WriteResult{RowsAffected: 1}, nil).Once()

	res, err := application.DeleteContact(ctx, 5)
	require.NoError(t, err)
	assert.True(t, res.Matched())
}
