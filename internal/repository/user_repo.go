package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"unidomus/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

// SetBan overwrites only the embedded ban columns.
func (r *UserRepository) SetBan(ctx context.Context, userID int64, ban domain.Ban) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"ban_permanently": ban.BanPermanently,
			"ban_time":        ban.BanTime,
			"ban_msg":         ban.BanMsg,
			"prev_ban_num":    ban.PrevBanNum,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HousingSeekers lists active users that publish no listing. Unless
// includeBanned is set, currently banned users are filtered out.
func (r *UserRepository) HousingSeekers(ctx context.Context, includeBanned bool, now time.Time) ([]domain.User, error) {
	q := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("listing_id IS NULL")
	if !includeBanned {
		q = excludeBanned(q, now)
	}

	var users []domain.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// excludeBanned keeps rows whose ban window has lapsed. The comparison
// mirrors domain.Ban.Active: permanent, or expiry beyond now plus grace.
func excludeBanned(q *gorm.DB, now time.Time) *gorm.DB {
	return q.Where("ban_permanently = ?", false).
		Where("ban_time IS NULL OR ban_time <= ?", now.Add(domain.BanGraceOffset))
}
