package match

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

const maxMessageLength = 1000

type Service struct {
	matches  Repository
	users    UserChecker
	notifier NotificationSender
	hub      Broadcaster
	now      func() time.Time
}

func NewService(matches Repository, users UserChecker, notifier NotificationSender, hub Broadcaster) *Service {
	return &Service{
		matches:  matches,
		users:    users,
		notifier: notifier,
		hub:      hub,
		now:      time.Now,
	}
}

// Create opens a pending match from requester to receiver and notifies the
// receiver.
func (s *Service) Create(ctx context.Context, requesterID, receiverID int64, matchType domain.MatchType) (*domain.Match, error) {
	if !domain.ValidMatchType(matchType) {
		return nil, ErrInvalidType
	}
	if requesterID == receiverID {
		return nil, ErrSelfMatch
	}

	for _, id := range []int64{requesterID, receiverID} {
		ok, err := s.users.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUserNotFound
		}
	}

	dup, err := s.matches.HasPendingBetween(ctx, requesterID, receiverID, matchType)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateMatch
	}

	m := &domain.Match{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		MatchType:   matchType,
		Status:      domain.MatchPending,
		RequestDate: s.now(),
	}
	if err := s.matches.Create(ctx, m); err != nil {
		return nil, err
	}

	s.notify(ctx, receiverID, domain.NotificationMatch,
		"You received a new match request.",
		fmt.Sprintf("/matches/%d", m.ID),
		domain.PriorityMedium)

	return m, nil
}

// UpdateStatus moves the match to the given status. Accepting stamps the
// confirmation timestamp. A terminal match can be re-transitioned; the store
// is last-write-wins here, matching the observed product behavior.
func (s *Service) UpdateStatus(ctx context.Context, matchID, actorID int64, status domain.MatchStatus) (*domain.Match, error) {
	if !domain.ValidMatchStatus(status) {
		return nil, ErrInvalidStatus
	}

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.Involves(actorID) {
		return nil, ErrNotParticipant
	}
	if actorID != m.ReceiverID && status != domain.MatchPending {
		return nil, ErrOnlyReceiver
	}

	var confirmed *time.Time
	if status == domain.MatchAccepted {
		t := s.now()
		confirmed = &t
	}

	if err := s.matches.UpdateStatus(ctx, matchID, status, confirmed); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m.Status = status
	m.ConfirmationDate = confirmed

	if status == domain.MatchAccepted {
		s.notify(ctx, m.RequesterID, domain.NotificationMatch,
			"Your match request was accepted.",
			fmt.Sprintf("/matches/%d", m.ID),
			domain.PriorityMedium)
	}

	return m, nil
}

// SendMessage appends one message to the match thread. The insert is atomic;
// status is deliberately not checked, so a declined match keeps a writable
// thread (observed product behavior, kept as-is).
func (s *Service) SendMessage(ctx context.Context, matchID, authorID int64, text string) (*domain.MatchMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if len(text) > maxMessageLength {
		return nil, ErrMessageTooLong
	}

	ok, err := s.users.Exists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.Involves(authorID) {
		return nil, ErrNotParticipant
	}

	msg := &domain.MatchMessage{
		MatchID:  matchID,
		AuthorID: authorID,
		Text:     text,
		SentAt:   s.now(),
	}
	if err := s.matches.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(matchID, msg)

	s.notify(ctx, m.OtherParticipant(authorID), domain.NotificationMessage,
		"You received a new message.",
		fmt.Sprintf("/matches/%d", matchID),
		domain.PriorityLow)

	return msg, nil
}

func (s *Service) Get(ctx context.Context, matchID int64) (*domain.Match, error) {
	return s.getMatch(ctx, matchID)
}

func (s *Service) Messages(ctx context.Context, matchID, actorID int64) ([]domain.MatchMessage, error) {
	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.Involves(actorID) {
		return nil, ErrNotParticipant
	}
	return s.matches.Messages(ctx, matchID)
}

func (s *Service) ForUser(ctx context.Context, userID int64) ([]domain.Match, error) {
	return s.matches.ForUser(ctx, userID)
}

func (s *Service) Received(ctx context.Context, userID int64) ([]domain.Match, error) {
	return s.matches.Received(ctx, userID)
}

func (s *Service) Sent(ctx context.Context, userID int64) ([]domain.Match, error) {
	return s.matches.Sent(ctx, userID)
}

// Delete removes the match and its thread. Notifications and reports that
// reference the match are left behind; see the report resolver, which
// tolerates dangling targets.
func (s *Service) Delete(ctx context.Context, matchID, actorID int64) error {
	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !m.Involves(actorID) {
		return ErrNotParticipant
	}

	err = s.matches.Delete(ctx, matchID)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (s *Service) getMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) notify(ctx context.Context, userID int64, t domain.NotificationType, message, link string, priority domain.NotificationPriority) {
	if _, err := s.notifier.Notify(ctx, userID, t, message, link, priority); err != nil {
		log.Printf("match: notification failed user=%d error=%q", userID, err.Error())
	}
}
