package repository

import (
	"context"

	"gorm.io/gorm"

	"unidomus/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// NotificationFilter scopes bulk deletes. UserID is mandatory; the rest are
// optional.
type NotificationFilter struct {
	UserID   int64
	Type     domain.NotificationType
	Status   domain.NotificationStatus
	Priority domain.NotificationPriority
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return translate(r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []domain.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

// MarkAllSeen flips every not-seen notification of the user. Running it twice
// is a no-op the second time.
func (r *NotificationRepository) MarkAllSeen(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND status = ?", userID, domain.NotificationNotSeen).
		Update("status", domain.NotificationSeen)
	return res.RowsAffected, translate(res.Error)
}

// Delete removes one notification, scoped to its owner.
func (r *NotificationRepository) Delete(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Notification{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteByFilter(ctx context.Context, f NotificationFilter) (int64, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	res := q.Delete(&domain.Notification{})
	return res.RowsAffected, translate(res.Error)
}

// CountUnseen backs the unread badge.
func (r *NotificationRepository) CountUnseen(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND status = ?", userID, domain.NotificationNotSeen).
		Count(&count).Error
	return count, translate(err)
}
