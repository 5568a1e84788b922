package notification

import (
	"context"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

// Repository is the slice of the notification store this service uses.
type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	MarkAllSeen(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id, userID int64) error
	DeleteByFilter(ctx context.Context, f repository.NotificationFilter) (int64, error)
	CountUnseen(ctx context.Context, userID int64) (int64, error)
}

// UserEmailReader resolves the target's address for the email mirror.
type UserEmailReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
