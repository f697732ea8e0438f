package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateContact(ctx context.Context, name, paternalSurname, maternalSurname, phone string, groupID int64) (*domain.Contact, error) {
	args := m.Called(ctx, name, paternalSurname, maternalSurname, phone, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockService) UpdateContact(ctx context.Context, ct *domain.Contact) (domain.WriteResult, error) {
	args := m.Called(ctx, ct)
	return args.Get(0).(domain.WriteResult), args.Error(1)
}

func (m *MockService) DeleteContact(ctx context.Context, id int64) (domain.WriteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.WriteResult), args.Error(1)
}

func (m *MockService) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockService) SearchContacts(ctx context.Context, fragment string) ([]domain.Contact, error) {
	args := m.Called(ctx, fragment)
	return contactsArg(args)
}

func (m *MockService) ListContactsInGroup(ctx context.Context, groupID int64) ([]domain.Contact, error) {
	args := m.Called(ctx, groupID)
	return contactsArg(args)
}

func (m *MockService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	args := m.Called(ctx)
	return contactsArg(args)
}

func (m *MockService) CountContacts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) CountContactsInGroup(ctx context.Context, groupID int64) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockService) GroupSummary(ctx context.Context, groupID int64) (*domain.GroupSummary, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupSummary), args.Error(1)
}

func contactsArg(args mock.Arguments) ([]domain.Contact, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

// execute runs the command tree against svc and reports how many times the
// service was released.
func execute(t *testing.T, svc Service, args ...string) (string, int, error) {
	t.Helper()
	released := 0
	root := NewRootCmd(func(ctx context.Context) (Service, func(), error) {
		return svc, func() { released++ }, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), released, err
}

var ana = domain.Contact{ID: 1, Name: "Ana", PaternalSurname: "Lopez", MaternalSurname: "Diaz", Phone: "555-1111", GroupID: 1}

func TestAddCommand(t *testing.T) {
	svc := new(MockService)
	created := ana
	svc.On("CreateContact", mock.Anything, "Ana", "Lopez", "Diaz", "555-1111", int64(1)).Return(&created, nil).Once()

	out, released, err := execute(t, svc, "add", "--name", "Ana", "--paternal", "Lopez", "--maternal", "Diaz", "--phone", "555-1111", "--group", "1", "--json")

	require.NoError(t, err)
	assert.Equal(t, 1, released)
	assert.JSONEq(t, `[{"id":1,"name":"Ana","paternal_surname":"Lopez","maternal_surname":"Diaz","phone":"555-1111","group_id":1}]`, out)
	svc.AssertExpectations(t)
}

func TestAddCommand_MissingRequiredFlag(t *testing.T) {
	svc := new(MockService)

	_, released, err := execute(t, svc, "add", "--name", "Ana", "--group", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
	assert.Equal(t, 0, released)
	svc.AssertNotCalled(t, "CreateContact")
}

func TestGetCommand(t *testing.T) {
	svc := new(MockService)
	found := ana
	svc.On("GetContact", mock.Anything, int64(1)).Return(&found, nil).Once()
	svc.On("GetContact", mock.Anything, int64(2)).Return(nil, domain.ErrNotFound).Once()

	out, _, err := execute(t, svc, "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "PHONE")
	assert.Contains(t, out, "555-1111")

	_, released, err := execute(t, svc, "get", "2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, released)

	_, _, err = execute(t, svc, "get", "abc")
	assert.ErrorContains(t, err, "invalid id")
	svc.AssertExpectations(t)
}

func TestSearchCommand_Tuple(t *testing.T) {
	svc := new(MockService)
	svc.On("SearchContacts", mock.Anything, "an").Return([]domain.Contact{ana}, nil).Once()

	out, _, err := execute(t, svc, "search", "an", "--tuple", "--json")

	require.NoError(t, err)
	assert.JSONEq(t, `[["1","Ana","Lopez","Diaz","555-1111","1"]]`, out)
	svc.AssertExpectations(t)
}

func TestListCommand(t *testing.T) {
	svc := new(MockService)
	svc.On("ListContacts", mock.Anything).Return([]domain.Contact{}, nil).Once()
	svc.On("ListContactsInGroup", mock.Anything, int64(2)).Return([]domain.Contact{}, nil).Once()

	out, _, err := execute(t, svc, "list")
	require.NoError(t, err)
	assert.Equal(t, "No contacts found.\n", out)

	out, _, err = execute(t, svc, "list", "--group", "2", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
	svc.AssertExpectations(t)
}

func TestUpdateCommand_NoMatch(t *testing.T) {
	svc := new(MockService)
	svc.On("UpdateContact", mock.Anything, mock.MatchedBy(func(c *domain.Contact) bool {
		return c.ID == 99 && c.Name == "Ana" && c.GroupID == 1
	})).Return(domain.WriteResult{}, nil).Once()

	_, _, err := execute(t, svc, "update", "99", "--name", "Ana", "--phone", "1", "--group", "1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	svc.AssertExpectations(t)
}

func TestDeleteCommand(t *testing.T) {
	svc := new(MockService)
	svc.On("DeleteContact", mock.Anything, int64(1)).Return(domain.WriteResult{RowsAffected: 1}, nil).Once()

	out, _, err := execute(t, svc, "delete", "1")

	require.NoError(t, err)
	assert.Equal(t, "Deleted contact 1.\n", out)
	svc.AssertExpectations(t)
}

func TestCountCommand(t *testing.T) {
	svc := new(MockService)
	svc.On("CountContacts", mock.Anything).Return(int64(4), nil).Once()
	svc.On("CountContactsInGroup", mock.Anything, int64(3)).Return(int64(0), nil).Once()
	svc.On("CountContacts", mock.Anything).Return(int64(0), domain.ConnectionError("CountAll", errors.New("refused"))).Once()

	out, _, err := execute(t, svc, "count")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, _, err = execute(t, svc, "count", "--group", "3", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":0,"group_id":3}`, out)

	_, _, err = execute(t, svc, "count")
	assert.ErrorIs(t, err, domain.ErrConnection)
	svc.AssertExpectations(t)
}

func TestGroupCommand(t *testing.T) {
	svc := new(MockService)
	svc.On("ListGroups", mock.Anything).Return([]domain.Group{{ID: 1, Name: "Familia"}}, nil).Once()
	svc.On("GroupSummary", mock.Anything, int64(1)).
		Return(&domain.GroupSummary{Group: domain.Group{ID: 1, Name: "Familia"}, ContactCount: 3}, nil).Once()

	out, _, err := execute(t, svc, "group")
	require.NoError(t, err)
	assert.Contains(t, out, "Familia")

	out, _, err = execute(t, svc, "group", "1")
	require.NoError(t, err)
	assert.Equal(t, "Familia (group 1): 3 contacts\n", out)
	svc.AssertExpectations(t)
}

func TestOpenFailure(t *testing.T) {
	root := NewRootCmd(func(ctx context.Context) (Service, func(), error) {
		return nil, nil, errors.New("dial tcp 127.0.0.1:5432: connection refused")
	})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"count"})

	err := root.Execute()
	assert.ErrorContains(t, err, "opening store")
}
