package user

import (
	"context"
	"time"

	"unidomus/internal/domain"
)

// Repository is the slice of the user store this service uses.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	HousingSeekers(ctx context.Context, includeBanned bool, now time.Time) ([]domain.User, error)
}
