package auth

import (
	"context"

	"unidomus/internal/domain"
)

// UserRepository is the slice of the user store the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// TokenRepository stores email verification tokens.
type TokenRepository interface {
	Create(ctx context.Context, t *domain.EmailVerificationToken) error
	Get(ctx context.Context, token string) (*domain.EmailVerificationToken, error)
	Delete(ctx context.Context, token string) error
}

// GoogleVerifier validates a Google ID token and returns the asserted
// identity. Implemented against the tokeninfo endpoint; faked in tests.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// GoogleIdentity is the subset of token claims the service needs.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}
