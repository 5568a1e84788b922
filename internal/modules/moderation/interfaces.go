package moderation

import (
	"context"

	"unidomus/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetBan(ctx context.Context, userID int64, ban domain.Ban) error
}

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	SetBan(ctx context.Context, listingID int64, ban domain.Ban) error
}

// NotificationSender tells the owning user about ban changes.
type NotificationSender interface {
	Notify(ctx context.Context, userID int64, t domain.NotificationType, message, link string, priority domain.NotificationPriority) (*domain.Notification, error)
}
