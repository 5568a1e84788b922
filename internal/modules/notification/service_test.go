package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	if n != nil {
		n.ID = 11 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockRepository) MarkAllSeen(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRepository) DeleteByFilter(ctx context.Context, f repository.NotificationFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountUnseen(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserEmailReader struct {
	mock.Mock
}

func (m *MockUserEmailReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func TestService_Notify_LowPrioritySkipsEmail(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserEmailReader)
	mail := new(MockMailer)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	s := NewService(repo, users, mail)

	n, err := s.Notify(context.Background(), 1, domain.NotificationMessage, "new message", "/matches/3", domain.PriorityLow)

	assert.NoError(t, err)
	assert.Equal(t, domain.NotificationNotSeen, n.Status)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_Notify_MediumPrioritySendsEmail(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserEmailReader)
	mail := new(MockMailer)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "marco@example.com"}, nil)
	mail.On("Send", mock.Anything, "marco@example.com", mock.Anything, mock.Anything).Return(nil)

	s := NewService(repo, users, mail)

	_, err := s.Notify(context.Background(), 1, domain.NotificationMatch, "match request", "/matches/3", domain.PriorityMedium)

	assert.NoError(t, err)
	mail.AssertExpectations(t)
}

func TestService_Notify_EmailFailureDoesNotFailWrite(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserEmailReader)
	mail := new(MockMailer)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "marco@example.com"}, nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay down"))

	s := NewService(repo, users, mail)
	s.retryCfg.MaxAttempts = 1

	n, err := s.Notify(context.Background(), 1, domain.NotificationAlert, "account banned", "", domain.PriorityHigh)

	assert.NoError(t, err)
	assert.NotNil(t, n)
}

func TestService_Notify_InvalidType(t *testing.T) {
	s := NewService(new(MockRepository), new(MockUserEmailReader), new(MockMailer))

	_, err := s.Notify(context.Background(), 1, "bogus", "hello", "", domain.PriorityLow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Notify_EmptyMessage(t *testing.T) {
	s := NewService(new(MockRepository), new(MockUserEmailReader), new(MockMailer))

	_, err := s.Notify(context.Background(), 1, domain.NotificationAlert, "", "", domain.PriorityLow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_MarkAllSeen_Idempotent(t *testing.T) {
	repo := new(MockRepository)
	repo.On("MarkAllSeen", mock.Anything, int64(1)).Return(int64(3), nil).Once()
	repo.On("MarkAllSeen", mock.Anything, int64(1)).Return(int64(0), nil).Once()

	s := NewService(repo, new(MockUserEmailReader), new(MockMailer))

	n, err := s.MarkAllSeen(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = s.MarkAllSeen(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, int64(404), int64(1)).Return(repository.ErrNotFound)

	s := NewService(repo, new(MockUserEmailReader), new(MockMailer))

	err := s.Delete(context.Background(), 404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteByFilter_RequiresUser(t *testing.T) {
	s := NewService(new(MockRepository), new(MockUserEmailReader), new(MockMailer))

	_, err := s.DeleteByFilter(context.Background(), repository.NotificationFilter{Type: domain.NotificationMatch})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ListForUser_UnseenCount(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByUser", mock.Anything, int64(1), 50).Return([]domain.Notification{{ID: 1}, {ID: 2}}, nil)
	repo.On("CountUnseen", mock.Anything, int64(1)).Return(int64(1), nil)

	s := NewService(repo, new(MockUserEmailReader), new(MockMailer))

	list, unseen, err := s.ListForUser(context.Background(), 1, 50)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(1), unseen)
}
