package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"unidomus/internal/domain"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, t *domain.EmailVerificationToken) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TokenRepository) Get(ctx context.Context, token string) (*domain.EmailVerificationToken, error) {
	var t domain.EmailVerificationToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	return translate(r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&domain.EmailVerificationToken{}).Error)
}

// DeleteExpired removes tokens past their usable window, grace included.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now.Add(-domain.BanGraceOffset)).
		Delete(&domain.EmailVerificationToken{})
	return res.RowsAffected, translate(res.Error)
}
