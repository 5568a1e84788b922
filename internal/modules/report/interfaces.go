package report

import (
	"context"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

// Repository is the slice of the report store this service uses.
type Repository interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	Update(ctx context.Context, r *domain.Report) error
	ListByStatus(ctx context.Context, status domain.ReportStatus, reviewerID *int64, p repository.Page) ([]domain.Report, error)
	ListByReporter(ctx context.Context, reporterID int64, p repository.Page) ([]domain.Report, error)
	ListByTarget(ctx context.Context, targetID int64, p repository.Page) ([]domain.Report, error)
	ListAll(ctx context.Context, p repository.Page) ([]domain.Report, error)
}

// UserChecker confirms the reporter exists.
type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// ListingChecker confirms a listing target exists.
type ListingChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// MatchChecker confirms a match target exists and bounds message indices.
// Message reports resolve against the match that holds the message.
type MatchChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
	CountMessages(ctx context.Context, matchID int64) (int64, error)
}
