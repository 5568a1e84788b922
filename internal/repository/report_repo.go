package repository

import (
	"context"

	"gorm.io/gorm"

	"unidomus/internal/domain"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Page is offset pagination for report listings; zero Limit means 50.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	return translate(r.db.WithContext(ctx).Create(rep).Error)
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	var rep domain.Report
	if err := r.db.WithContext(ctx).First(&rep, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rep, nil
}

func (r *ReportRepository) Update(ctx context.Context, rep *domain.Report) error {
	return translate(r.db.WithContext(ctx).Save(rep).Error)
}

// ListByStatus returns reports in one status, newest first. When reviewerID
// is non-nil the result is scoped to that reviewer.
func (r *ReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus, reviewerID *int64, p Page) ([]domain.Report, error) {
	p = p.normalize()
	q := r.db.WithContext(ctx).Where("status = ?", status)
	if reviewerID != nil {
		q = q.Where("reviewer_id = ?", *reviewerID)
	}
	return r.page(q, p)
}

func (r *ReportRepository) ListByReporter(ctx context.Context, reporterID int64, p Page) ([]domain.Report, error) {
	return r.page(r.db.WithContext(ctx).Where("reporter_id = ?", reporterID), p.normalize())
}

func (r *ReportRepository) ListByTarget(ctx context.Context, targetID int64, p Page) ([]domain.Report, error) {
	return r.page(r.db.WithContext(ctx).Where("target_id = ?", targetID), p.normalize())
}

func (r *ReportRepository) ListAll(ctx context.Context, p Page) ([]domain.Report, error) {
	return r.page(r.db.WithContext(ctx).Model(&domain.Report{}), p.normalize())
}

func (r *ReportRepository) page(q *gorm.DB, p Page) ([]domain.Report, error) {
	var reports []domain.Report
	err := q.Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&reports).Error
	if err != nil {
		return nil, translate(err)
	}
	return reports, nil
}
