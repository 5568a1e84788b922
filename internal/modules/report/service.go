package report

import (
	"context"
	"time"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/fieldcheck"
	"unidomus/internal/repository"
)

type Service struct {
	reports  Repository
	users    UserChecker
	listings ListingChecker
	matches  MatchChecker
	now      func() time.Time
}

func NewService(reports Repository, users UserChecker, listings ListingChecker, matches MatchChecker) *Service {
	return &Service{
		reports:  reports,
		users:    users,
		listings: listings,
		matches:  matches,
		now:      time.Now,
	}
}

// Create files a complaint. The target is resolved against the collection
// named by the report type; message reports also validate the index against
// the match's message count.
func (s *Service) Create(ctx context.Context, reporterID int64, reportType domain.ReportType, targetID int64, description string, messageIndex *int) (*domain.Report, error) {
	if !domain.ValidReportType(reportType) {
		return nil, ErrInvalidType
	}
	if violations := fieldcheck.ReportDescription(description); len(violations) > 0 {
		return nil, ErrValidation
	}

	ok, err := s.users.Exists(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReporterNotFound
	}

	if err := s.resolveTarget(ctx, reportType, targetID, messageIndex); err != nil {
		return nil, err
	}

	r := &domain.Report{
		ReporterID:  reporterID,
		ReportType:  reportType,
		TargetID:    targetID,
		Description: description,
		Status:      domain.ReportPending,
	}
	if reportType == domain.ReportMessage {
		r.MessageIndex = messageIndex
	}

	if err := s.reports.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// resolveTarget dispatches on the report type. Message reports live inside a
// match, so both resolve against the match collection.
func (s *Service) resolveTarget(ctx context.Context, t domain.ReportType, targetID int64, messageIndex *int) error {
	var exists bool
	var err error

	switch t {
	case domain.ReportUser:
		exists, err = s.users.Exists(ctx, targetID)
	case domain.ReportListing:
		exists, err = s.listings.Exists(ctx, targetID)
	case domain.ReportMatch, domain.ReportMessage:
		exists, err = s.matches.Exists(ctx, targetID)
	default:
		return ErrInvalidType
	}
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}

	if t == domain.ReportMessage {
		if messageIndex == nil {
			return ErrMissingIndex
		}
		count, err := s.matches.CountMessages(ctx, targetID)
		if err != nil {
			return err
		}
		if *messageIndex < 0 || int64(*messageIndex) >= count {
			return ErrInvalidIndex
		}
	}

	return nil
}

// ClaimForReview moves the report to reviewing and stamps the reviewer.
// Re-claiming an already-reviewing report just restamps it.
func (s *Service) ClaimForReview(ctx context.Context, reportID, reviewerID int64) (*domain.Report, error) {
	r, err := s.get(ctx, reportID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r.Status = domain.ReportReviewing
	r.ReviewerID = &reviewerID
	r.ReviewDate = &now

	if err := s.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Resolve closes the report.
func (s *Service) Resolve(ctx context.Context, reportID int64) (*domain.Report, error) {
	r, err := s.get(ctx, reportID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r.Status = domain.ReportResolved
	r.ResolvedDate = &now

	if err := s.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Remove dismisses the report: the reviewer fields are cleared and the
// status becomes removed, a named state distinct from resolved.
func (s *Service) Remove(ctx context.Context, reportID int64) (*domain.Report, error) {
	r, err := s.get(ctx, reportID)
	if err != nil {
		return nil, err
	}

	r.Status = domain.ReportRemoved
	r.ReviewerID = nil
	r.ReviewDate = nil

	if err := s.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, reportID int64) (*domain.Report, error) {
	return s.get(ctx, reportID)
}

func (s *Service) Pending(ctx context.Context, p repository.Page) ([]domain.Report, error) {
	return s.reports.ListByStatus(ctx, domain.ReportPending, nil, p)
}

func (s *Service) Resolved(ctx context.Context, p repository.Page) ([]domain.Report, error) {
	return s.reports.ListByStatus(ctx, domain.ReportResolved, nil, p)
}

// Reviewing lists in-review reports; reviewerID, when non-nil, scopes them to
// one admin.
func (s *Service) Reviewing(ctx context.Context, reviewerID *int64, p repository.Page) ([]domain.Report, error) {
	return s.reports.ListByStatus(ctx, domain.ReportReviewing, reviewerID, p)
}

func (s *Service) ByReporter(ctx context.Context, reporterID int64, p repository.Page) ([]domain.Report, error) {
	return s.reports.ListByReporter(ctx, reporterID, p)
}

func (s *Service) ByTarget(ctx context.Context, targetID int64, p repository.Page) ([]domain.Report, error) {
	return s.reports.ListByTarget(ctx, targetID, p)
}

func (s *Service) All(ctx context.Context, p repository.Page) ([]domain.Report, error) {
	return s.reports.ListAll(ctx, p)
}

func (s *Service) get(ctx context.Context, reportID int64) (*domain.Report, error) {
	r, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}
