package match

import (
	"context"
	"time"

	"unidomus/internal/domain"
)

// Repository is the slice of the match store this service uses.
type Repository interface {
	Create(ctx context.Context, m *domain.Match) error
	GetByID(ctx context.Context, id int64) (*domain.Match, error)
	HasPendingBetween(ctx context.Context, requesterID, receiverID int64, t domain.MatchType) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MatchStatus, confirmed *time.Time) error
	ForUser(ctx context.Context, userID int64) ([]domain.Match, error)
	Received(ctx context.Context, userID int64) ([]domain.Match, error)
	Sent(ctx context.Context, userID int64) ([]domain.Match, error)
	Delete(ctx context.Context, id int64) error
	AppendMessage(ctx context.Context, msg *domain.MatchMessage) error
	Messages(ctx context.Context, matchID int64) ([]domain.MatchMessage, error)
}

// UserChecker confirms referenced users exist.
type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// NotificationSender alerts the receiver about match events.
type NotificationSender interface {
	Notify(ctx context.Context, userID int64, t domain.NotificationType, message, link string, priority domain.NotificationPriority) (*domain.Notification, error)
}

// Broadcaster pushes a persisted message to connected chat clients. Delivery
// is fire-and-forget; clients that miss it refetch the message list.
type Broadcaster interface {
	BroadcastMessage(matchID int64, msg *domain.MatchMessage)
}

// NopBroadcaster satisfies Broadcaster when no chat hub is wired, e.g. in
// tests or the seed command.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastMessage(int64, *domain.MatchMessage) {}
