package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"unidomus/internal/domain"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	var m domain.Match
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MatchRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Match{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// HasPendingBetween reports whether a pending match of the same type already
// connects the pair in this direction.
func (r *MatchRepository) HasPendingBetween(ctx context.Context, requesterID, receiverID int64, t domain.MatchType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Match{}).
		Where("requester_id = ? AND receiver_id = ? AND match_type = ? AND status = ?",
			requesterID, receiverID, t, domain.MatchPending).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// UpdateStatus sets the status and, when confirmed is non-nil, the
// confirmation timestamp, in one statement.
func (r *MatchRepository) UpdateStatus(ctx context.Context, id int64, status domain.MatchStatus, confirmed *time.Time) error {
	updates := map[string]any{"status": status}
	if confirmed != nil {
		updates["confirmation_date"] = *confirmed
	}
	res := r.db.WithContext(ctx).Model(&domain.Match{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MatchRepository) ForUser(ctx context.Context, userID int64) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Order("request_date DESC").
		Find(&matches).Error
	if err != nil {
		return nil, translate(err)
	}
	return matches, nil
}

func (r *MatchRepository) Received(ctx context.Context, userID int64) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", userID).
		Order("request_date DESC").
		Find(&matches).Error
	if err != nil {
		return nil, translate(err)
	}
	return matches, nil
}

func (r *MatchRepository) Sent(ctx context.Context, userID int64) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", userID).
		Order("request_date DESC").
		Find(&matches).Error
	if err != nil {
		return nil, translate(err)
	}
	return matches, nil
}

// Delete removes the match and its messages in one transaction.
func (r *MatchRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", id).Delete(&domain.MatchMessage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Match{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}

// AppendMessage is a single atomic insert; concurrent senders cannot lose
// each other's messages.
func (r *MatchRepository) AppendMessage(ctx context.Context, msg *domain.MatchMessage) error {
	return translate(r.db.WithContext(ctx).Create(msg).Error)
}

func (r *MatchRepository) Messages(ctx context.Context, matchID int64) ([]domain.MatchMessage, error) {
	var msgs []domain.MatchMessage
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, translate(err)
	}
	return msgs, nil
}

func (r *MatchRepository) CountMessages(ctx context.Context, matchID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MatchMessage{}).
		Where("match_id = ?", matchID).
		Count(&count).Error
	return count, translate(err)
}
