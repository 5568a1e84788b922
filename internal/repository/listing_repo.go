package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"unidomus/internal/domain"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// ListingFilter narrows List results. Zero values mean "no constraint".
type ListingFilter struct {
	City     string
	Typology string
	PriceMin int
	PriceMax int
	AreaMin  int
	AreaMax  int
}

// CreateForPublisher inserts the listing and points the publisher's
// listing_id at it in one transaction, so a failed second write cannot leave
// a listing without a back-reference.
func (r *ListingRepository) CreateForPublisher(ctx context.Context, l *domain.Listing) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.User{}).
			Where("id = ?", l.PublisherID).
			Update("listing_id", l.ID)
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

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *ListingRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// List returns listings matching the filter, newest first. Banned listings
// are excluded unless includeBanned is set (admin callers).
func (r *ListingRepository) List(ctx context.Context, f ListingFilter, includeBanned bool, now time.Time) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx).Model(&domain.Listing{})

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Typology != "" {
		q = q.Where("typology = ?", f.Typology)
	}
	if f.PriceMin > 0 {
		q = q.Where("price >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("price <= ?", f.PriceMax)
	}
	if f.AreaMin > 0 {
		q = q.Where("floor_area >= ?", f.AreaMin)
	}
	if f.AreaMax > 0 {
		q = q.Where("floor_area <= ?", f.AreaMax)
	}
	if !includeBanned {
		q = excludeBanned(q, now)
	}

	var listings []domain.Listing
	if err := q.Order("publication_date DESC").Find(&listings).Error; err != nil {
		return nil, translate(err)
	}
	return listings, nil
}

// AllCoordinates returns the map projection for every visible listing.
func (r *ListingRepository) AllCoordinates(ctx context.Context, includeBanned bool, now time.Time) ([]domain.Coordinates, error) {
	q := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	if !includeBanned {
		q = excludeBanned(q, now)
	}

	var coords []domain.Coordinates
	err := q.Select("id AS listing_id", "latitude", "longitude").Scan(&coords).Error
	if err != nil {
		return nil, translate(err)
	}
	return coords, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return translate(r.db.WithContext(ctx).Save(l).Error)
}

// SetBan overwrites only the embedded ban columns.
func (r *ListingRepository) SetBan(ctx context.Context, listingID int64, ban domain.Ban) error {
	res := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("id = ?", listingID).
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

// DeleteWithPublisher removes the listing and clears the publisher's
// back-reference in one transaction.
func (r *ListingRepository) DeleteWithPublisher(ctx context.Context, listingID, publisherID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Listing{}, listingID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.User{}).
			Where("id = ? AND listing_id = ?", publisherID, listingID).
			Update("listing_id", nil).Error
	})
	return translate(err)
}
