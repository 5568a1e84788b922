package listing

import (
	"context"
	"time"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

// Repository is the slice of the listing store this service uses.
type Repository interface {
	CreateForPublisher(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, f repository.ListingFilter, includeBanned bool, now time.Time) ([]domain.Listing, error)
	AllCoordinates(ctx context.Context, includeBanned bool, now time.Time) ([]domain.Coordinates, error)
	Update(ctx context.Context, l *domain.Listing) error
	DeleteWithPublisher(ctx context.Context, listingID, publisherID int64) error
}

// UserReader resolves publisher and tenant references.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// NotificationSender alerts the publisher when moderation deletes a listing.
type NotificationSender interface {
	Notify(ctx context.Context, userID int64, t domain.NotificationType, message, link string, priority domain.NotificationPriority) (*domain.Notification, error)
}

// Geocoder resolves the structured address to map coordinates.
type Geocoder interface {
	Forward(ctx context.Context, address string) (lat, lon float64, err error)
}
