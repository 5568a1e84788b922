package match

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *domain.Match) error {
	args := m.Called(ctx, match)
	if match != nil {
		match.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockMatchRepository) HasPendingBetween(ctx context.Context, requesterID, receiverID int64, t domain.MatchType) (bool, error) {
	args := m.Called(ctx, requesterID, receiverID, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockMatchRepository) UpdateStatus(ctx context.Context, id int64, status domain.MatchStatus, confirmed *time.Time) error {
	args := m.Called(ctx, id, status, confirmed)
	return args.Error(0)
}

func (m *MockMatchRepository) ForUser(ctx context.Context, userID int64) ([]domain.Match, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *MockMatchRepository) Received(ctx context.Context, userID int64) ([]domain.Match, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *MockMatchRepository) Sent(ctx context.Context, userID int64) ([]domain.Match, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *MockMatchRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMatchRepository) AppendMessage(ctx context.Context, msg *domain.MatchMessage) error {
	args := m.Called(ctx, msg)
	if msg != nil {
		msg.ID = 7
	}
	return args.Error(0)
}

func (m *MockMatchRepository) Messages(ctx context.Context, matchID int64) ([]domain.MatchMessage, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchMessage), args.Error(1)
}

type MockUserChecker struct {
	mock.Mock
}

func (m *MockUserChecker) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Notify(ctx context.Context, userID int64, t domain.NotificationType, message, link string, priority domain.NotificationPriority) (*domain.Notification, error) {
	args := m.Called(ctx, userID, t, message, link, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastMessage(matchID int64, msg *domain.MatchMessage) {
	m.Called(matchID, msg)
}

func newTestService(matches *MockMatchRepository, users *MockUserChecker, notifs *MockNotificationSender, hub Broadcaster) *Service {
	if hub == nil {
		hub = NopBroadcaster{}
	}
	s := NewService(matches, users, notifs, hub)
	s.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Create_Success(t *testing.T) {
	matches := new(MockMatchRepository)
	users := new(MockUserChecker)
	notifs := new(MockNotificationSender)

	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	matches.On("HasPendingBetween", mock.Anything, int64(1), int64(2), domain.MatchTypeApartment).Return(false, nil)
	matches.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("Notify", mock.Anything, int64(2), domain.NotificationMatch, mock.Anything, "/matches/42", domain.PriorityMedium).
		Return(&domain.Notification{ID: 1}, nil)

	s := newTestService(matches, users, notifs, nil)

	m, err := s.Create(context.Background(), 1, 2, domain.MatchTypeApartment)

	assert.NoError(t, err)
	assert.Equal(t, domain.MatchPending, m.Status)
	assert.Nil(t, m.ConfirmationDate)
	notifs.AssertExpectations(t)
}

func TestService_Create_Self(t *testing.T) {
	s := newTestService(new(MockMatchRepository), new(MockUserChecker), new(MockNotificationSender), nil)

	_, err := s.Create(context.Background(), 5, 5, domain.MatchTypeRoommate)
	assert.ErrorIs(t, err, ErrSelfMatch)
}

func TestService_Create_DuplicatePending(t *testing.T) {
	matches := new(MockMatchRepository)
	users := new(MockUserChecker)

	users.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
	matches.On("HasPendingBetween", mock.Anything, int64(1), int64(2), domain.MatchTypeRoommate).Return(true, nil)

	s := newTestService(matches, users, new(MockNotificationSender), nil)

	_, err := s.Create(context.Background(), 1, 2, domain.MatchTypeRoommate)
	assert.ErrorIs(t, err, ErrDuplicateMatch)
	matches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_UnknownReceiver(t *testing.T) {
	matches := new(MockMatchRepository)
	users := new(MockUserChecker)

	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	users.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	s := newTestService(matches, users, new(MockNotificationSender), nil)

	_, err := s.Create(context.Background(), 1, 99, domain.MatchTypeApartment)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_UpdateStatus_AcceptStampsConfirmation(t *testing.T) {
	matches := new(MockMatchRepository)
	notifs := new(MockNotificationSender)

	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2, Status: domain.MatchPending}
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	matches.On("UpdateStatus", mock.Anything, int64(42), domain.MatchAccepted, mock.Anything).Return(nil)
	notifs.On("Notify", mock.Anything, int64(1), domain.NotificationMatch, mock.Anything, "/matches/42", domain.PriorityMedium).
		Return(&domain.Notification{ID: 2}, nil)

	s := newTestService(matches, new(MockUserChecker), notifs, nil)

	m, err := s.UpdateStatus(context.Background(), 42, 2, domain.MatchAccepted)

	assert.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, m.Status)
	assert.NotNil(t, m.ConfirmationDate)
	notifs.AssertExpectations(t)
}

func TestService_UpdateStatus_RequesterCannotAccept(t *testing.T) {
	matches := new(MockMatchRepository)

	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2, Status: domain.MatchPending}
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)

	s := newTestService(matches, new(MockUserChecker), new(MockNotificationSender), nil)

	_, err := s.UpdateStatus(context.Background(), 42, 1, domain.MatchAccepted)
	assert.ErrorIs(t, err, ErrOnlyReceiver)
}

func TestService_UpdateStatus_Outsider(t *testing.T) {
	matches := new(MockMatchRepository)

	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2, Status: domain.MatchPending}
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)

	s := newTestService(matches, new(MockUserChecker), new(MockNotificationSender), nil)

	_, err := s.UpdateStatus(context.Background(), 42, 3, domain.MatchDeclined)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestService_UpdateStatus_ReacceptAfterDecline(t *testing.T) {
	matches := new(MockMatchRepository)
	notifs := new(MockNotificationSender)

	// Terminal states are not locked; the last write wins.
	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2, Status: domain.MatchDeclined}
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	matches.On("UpdateStatus", mock.Anything, int64(42), domain.MatchAccepted, mock.Anything).Return(nil)
	notifs.On("Notify", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Notification{ID: 3}, nil)

	s := newTestService(matches, new(MockUserChecker), notifs, nil)

	m, err := s.UpdateStatus(context.Background(), 42, 2, domain.MatchAccepted)
	assert.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, m.Status)
}

func TestService_SendMessage_Success(t *testing.T) {
	matches := new(MockMatchRepository)
	users := new(MockUserChecker)
	notifs := new(MockNotificationSender)
	hub := new(MockBroadcaster)

	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2, Status: domain.MatchAccepted}
	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	matches.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)
	hub.On("BroadcastMessage", int64(42), mock.Anything).Return()
	notifs.On("Notify", mock.Anything, int64(2), domain.NotificationMessage, mock.Anything, "/matches/42", domain.PriorityLow).
		Return(&domain.Notification{ID: 4}, nil)

	s := newTestService(matches, users, notifs, hub)

	msg, err := s.SendMessage(context.Background(), 42, 1, "  hello there  ")

	assert.NoError(t, err)
	assert.Equal(t, "hello there", msg.Text)
	assert.Equal(t, int64(1), msg.AuthorID)
	hub.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestService_SendMessage_DeclinedThreadStaysOpen(t *testing.T) {
	matches := new(MockMatchRepository)
	users := new(MockUserChecker)
	notifs := new(MockNotificationSender)

	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2, Status: domain.MatchDeclined}
	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	matches.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)
	notifs.On("Notify", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Notification{ID: 5}, nil)

	s := newTestService(matches, users, notifs, nil)

	_, err := s.SendMessage(context.Background(), 42, 2, "still interested?")
	assert.NoError(t, err)
}

func TestService_SendMessage_Empty(t *testing.T) {
	s := newTestService(new(MockMatchRepository), new(MockUserChecker), new(MockNotificationSender), nil)

	_, err := s.SendMessage(context.Background(), 42, 1, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestService_SendMessage_TooLong(t *testing.T) {
	s := newTestService(new(MockMatchRepository), new(MockUserChecker), new(MockNotificationSender), nil)

	long := make([]byte, maxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := s.SendMessage(context.Background(), 42, 1, string(long))
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestService_SendMessage_Outsider(t *testing.T) {
	matches := new(MockMatchRepository)
	users := new(MockUserChecker)

	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2}
	users.On("Exists", mock.Anything, int64(9)).Return(true, nil)
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)

	s := newTestService(matches, users, new(MockNotificationSender), nil)

	_, err := s.SendMessage(context.Background(), 42, 9, "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)
	matches.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything)
}

func TestService_Messages_ParticipantOnly(t *testing.T) {
	matches := new(MockMatchRepository)

	existing := &domain.Match{ID: 42, RequesterID: 1, ReceiverID: 2}
	matches.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)

	s := newTestService(matches, new(MockUserChecker), new(MockNotificationSender), nil)

	_, err := s.Messages(context.Background(), 42, 3)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestService_Delete_NotFound(t *testing.T) {
	matches := new(MockMatchRepository)
	matches.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	s := newTestService(matches, new(MockUserChecker), new(MockNotificationSender), nil)

	err := s.Delete(context.Background(), 404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
