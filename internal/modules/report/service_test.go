package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, r *domain.Report) error {
	args := m.Called(ctx, r)
	if r != nil {
		r.ID = 77 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, r *domain.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus, reviewerID *int64, p repository.Page) ([]domain.Report, error) {
	args := m.Called(ctx, status, reviewerID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListByReporter(ctx context.Context, reporterID int64, p repository.Page) ([]domain.Report, error) {
	args := m.Called(ctx, reporterID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListByTarget(ctx context.Context, targetID int64, p repository.Page) ([]domain.Report, error) {
	args := m.Called(ctx, targetID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListAll(ctx context.Context, p repository.Page) ([]domain.Report, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockMatchChecker struct {
	mock.Mock
}

func (m *MockMatchChecker) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMatchChecker) CountMessages(ctx context.Context, matchID int64) (int64, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(reports *MockReportRepository, users, listings *MockChecker, matches *MockMatchChecker) *Service {
	s := NewService(reports, users, listings, matches)
	s.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func intPtr(v int) *int { return &v }

func TestService_Create_UserReport(t *testing.T) {
	reports := new(MockReportRepository)
	users := new(MockChecker)

	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	reports.On("Create", mock.Anything, mock.Anything).Return(nil)

	s := newTestService(reports, users, new(MockChecker), new(MockMatchChecker))

	r, err := s.Create(context.Background(), 1, domain.ReportUser, 2, "harassment", nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReportPending, r.Status)
	assert.Nil(t, r.MessageIndex)
}

func TestService_Create_MessageReportValidatesIndex(t *testing.T) {
	reports := new(MockReportRepository)
	users := new(MockChecker)
	matches := new(MockMatchChecker)

	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	matches.On("Exists", mock.Anything, int64(42)).Return(true, nil)
	matches.On("CountMessages", mock.Anything, int64(42)).Return(int64(3), nil)
	reports.On("Create", mock.Anything, mock.Anything).Return(nil)

	s := newTestService(reports, users, new(MockChecker), matches)

	r, err := s.Create(context.Background(), 1, domain.ReportMessage, 42, "offensive message", intPtr(2))

	assert.NoError(t, err)
	assert.Equal(t, 2, *r.MessageIndex)
}

func TestService_Create_MessageIndexOutOfRange(t *testing.T) {
	reports := new(MockReportRepository)
	users := new(MockChecker)
	matches := new(MockMatchChecker)

	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	matches.On("Exists", mock.Anything, int64(42)).Return(true, nil)
	matches.On("CountMessages", mock.Anything, int64(42)).Return(int64(3), nil)

	s := newTestService(reports, users, new(MockChecker), matches)

	_, err := s.Create(context.Background(), 1, domain.ReportMessage, 42, "offensive", intPtr(3))
	assert.ErrorIs(t, err, ErrInvalidIndex)

	_, err = s.Create(context.Background(), 1, domain.ReportMessage, 42, "offensive", intPtr(-1))
	assert.ErrorIs(t, err, ErrInvalidIndex)

	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_MessageIndexRequired(t *testing.T) {
	users := new(MockChecker)
	matches := new(MockMatchChecker)

	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	matches.On("Exists", mock.Anything, int64(42)).Return(true, nil)

	s := newTestService(new(MockReportRepository), users, new(MockChecker), matches)

	_, err := s.Create(context.Background(), 1, domain.ReportMessage, 42, "offensive", nil)
	assert.ErrorIs(t, err, ErrMissingIndex)
}

func TestService_Create_TargetMissing(t *testing.T) {
	users := new(MockChecker)
	listings := new(MockChecker)

	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	listings.On("Exists", mock.Anything, int64(404)).Return(false, nil)

	s := newTestService(new(MockReportRepository), users, listings, new(MockMatchChecker))

	_, err := s.Create(context.Background(), 1, domain.ReportListing, 404, "scam listing", nil)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestService_Create_DescriptionTooLong(t *testing.T) {
	s := newTestService(new(MockReportRepository), new(MockChecker), new(MockChecker), new(MockMatchChecker))

	long := make([]byte, domain.MaxReportDescription+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := s.Create(context.Background(), 1, domain.ReportUser, 2, string(long), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ClaimForReview_StampsReviewer(t *testing.T) {
	reports := new(MockReportRepository)

	reports.On("GetByID", mock.Anything, int64(77)).Return(&domain.Report{ID: 77, Status: domain.ReportPending}, nil)
	reports.On("Update", mock.Anything, mock.Anything).Return(nil)

	s := newTestService(reports, new(MockChecker), new(MockChecker), new(MockMatchChecker))

	r, err := s.ClaimForReview(context.Background(), 77, 5)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReportReviewing, r.Status)
	assert.Equal(t, int64(5), *r.ReviewerID)
	assert.NotNil(t, r.ReviewDate)
}

func TestService_Resolve_StampsDate(t *testing.T) {
	reports := new(MockReportRepository)

	reviewer := int64(5)
	reports.On("GetByID", mock.Anything, int64(77)).Return(&domain.Report{
		ID: 77, Status: domain.ReportReviewing, ReviewerID: &reviewer,
	}, nil)
	reports.On("Update", mock.Anything, mock.Anything).Return(nil)

	s := newTestService(reports, new(MockChecker), new(MockChecker), new(MockMatchChecker))

	r, err := s.Resolve(context.Background(), 77)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReportResolved, r.Status)
	assert.NotNil(t, r.ResolvedDate)
	assert.Equal(t, reviewer, *r.ReviewerID)
}

func TestService_Remove_ClearsReviewer(t *testing.T) {
	reports := new(MockReportRepository)

	reviewer := int64(5)
	now := time.Now()
	reports.On("GetByID", mock.Anything, int64(77)).Return(&domain.Report{
		ID: 77, Status: domain.ReportReviewing, ReviewerID: &reviewer, ReviewDate: &now,
	}, nil)
	reports.On("Update", mock.Anything, mock.Anything).Return(nil)

	s := newTestService(reports, new(MockChecker), new(MockChecker), new(MockMatchChecker))

	r, err := s.Remove(context.Background(), 77)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReportRemoved, r.Status)
	assert.Nil(t, r.ReviewerID)
	assert.Nil(t, r.ReviewDate)
}

func TestService_Get_NotFound(t *testing.T) {
	reports := new(MockReportRepository)
	reports.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	s := newTestService(reports, new(MockChecker), new(MockChecker), new(MockMatchChecker))

	_, err := s.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Reviewing_ScopedToAdmin(t *testing.T) {
	reports := new(MockReportRepository)

	admin := int64(5)
	reports.On("ListByStatus", mock.Anything, domain.ReportReviewing, &admin, mock.Anything).
		Return([]domain.Report{{ID: 1}}, nil)

	s := newTestService(reports, new(MockChecker), new(MockChecker), new(MockMatchChecker))

	list, err := s.Reviewing(context.Background(), &admin, repository.Page{})
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
