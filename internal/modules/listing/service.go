package listing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/fieldcheck"
	"unidomus/internal/repository"
)

type Service struct {
	listings Repository
	users    UserReader
	geocoder Geocoder
	notifier NotificationSender
	now      func() time.Time
}

func NewService(listings Repository, users UserReader, geocoder Geocoder, notifier NotificationSender) *Service {
	return &Service{
		listings: listings,
		users:    users,
		geocoder: geocoder,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create validates and stores a new listing for the publisher. Geocoding is
// best-effort: a geocoder failure leaves the coordinates empty and is only
// logged. The insert and the publisher back-reference go through one
// transaction.
func (s *Service) Create(ctx context.Context, publisherID int64, req CreateRequest) (*domain.Listing, []fieldcheck.FieldError, error) {
	violations := fieldcheck.Listing(fieldcheck.ListingPayload{
		Street:       &req.Address.Street,
		City:         &req.Address.City,
		CAP:          &req.Address.CAP,
		HouseNum:     &req.Address.HouseNum,
		Province:     &req.Address.Province,
		Country:      &req.Address.Country,
		Photos:       &req.Photos,
		TenantIDs:    &req.TenantIDs,
		Description:  &req.Description,
		Price:        &req.Price,
		FloorArea:    &req.FloorArea,
		Availability: &req.Availability,
	})
	if len(violations) > 0 {
		return nil, violations, nil
	}

	publisher, err := s.users.GetByID(ctx, publisherID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, ErrPublisherNotFound
		}
		return nil, nil, err
	}
	if publisher.ListingID != nil {
		return nil, nil, ErrAlreadyPublishing
	}

	if err := s.checkTenants(ctx, req.TenantIDs); err != nil {
		return nil, nil, err
	}

	l := &domain.Listing{
		Address:         req.Address,
		Photos:          req.Photos,
		PublisherID:     publisherID,
		TenantIDs:       req.TenantIDs,
		Typology:        req.Typology,
		Description:     req.Description,
		Price:           req.Price,
		FloorArea:       req.FloorArea,
		Availability:    req.Availability,
		PublicationDate: s.now(),
	}
	if l.TenantIDs == nil {
		l.TenantIDs = []int64{}
	}

	s.geocode(ctx, l)

	if err := s.listings.CreateForPublisher(ctx, l); err != nil {
		return nil, nil, err
	}
	return l, nil, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// List returns listings for the filter. Non-admin callers never see
// currently banned listings.
func (s *Service) List(ctx context.Context, f repository.ListingFilter, actorAdmin bool) ([]domain.Listing, error) {
	return s.listings.List(ctx, f, actorAdmin, s.now())
}

func (s *Service) Coordinates(ctx context.Context, actorAdmin bool) ([]domain.Coordinates, error) {
	return s.listings.AllCoordinates(ctx, actorAdmin, s.now())
}

func (s *Service) CoordinatesFor(ctx context.Context, id int64) (*domain.Coordinates, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Coordinates{
		ListingID: l.ID,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}, nil
}

// Update applies a partial edit. The publisher and publication date never
// change; a changed address is re-geocoded.
func (s *Service) Update(ctx context.Context, id, actorID int64, actorAdmin bool, req UpdateRequest) (*domain.Listing, []fieldcheck.FieldError, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if l.PublisherID != actorID && !actorAdmin {
		return nil, nil, ErrNotPublisher
	}

	payload := fieldcheck.ListingPayload{
		Photos:       req.Photos,
		TenantIDs:    req.TenantIDs,
		Description:  req.Description,
		Price:        req.Price,
		FloorArea:    req.FloorArea,
		Availability: req.Availability,
	}
	if req.Address != nil {
		payload.Street = &req.Address.Street
		payload.City = &req.Address.City
		payload.CAP = &req.Address.CAP
		payload.HouseNum = &req.Address.HouseNum
		payload.Province = &req.Address.Province
		payload.Country = &req.Address.Country
	}
	if violations := fieldcheck.Listing(payload); len(violations) > 0 {
		return nil, violations, nil
	}

	if req.TenantIDs != nil {
		if err := s.checkTenants(ctx, *req.TenantIDs); err != nil {
			return nil, nil, err
		}
		l.TenantIDs = *req.TenantIDs
	}

	addressChanged := false
	if req.Address != nil && *req.Address != l.Address {
		l.Address = *req.Address
		addressChanged = true
	}
	if req.Photos != nil {
		l.Photos = *req.Photos
	}
	if req.Typology != nil {
		l.Typology = *req.Typology
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.FloorArea != nil {
		l.FloorArea = *req.FloorArea
	}
	if req.Availability != nil {
		l.Availability = *req.Availability
	}

	if addressChanged {
		l.Latitude = nil
		l.Longitude = nil
		s.geocode(ctx, l)
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, nil, err
	}
	return l, nil, nil
}

// Delete removes a listing (admin surface) and tells the publisher.
func (s *Service) Delete(ctx context.Context, id int64) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.listings.DeleteWithPublisher(ctx, l.ID, l.PublisherID); err != nil {
		if err == repository.ErrNotFound {
			return ErrNotFound
		}
		return err
	}

	msg := fmt.Sprintf("Your listing in %s was removed by the moderation team.", l.Address.City)
	if _, err := s.notifier.Notify(ctx, l.PublisherID, domain.NotificationAlert, msg, "", domain.PriorityHigh); err != nil {
		log.Printf("listing: delete notification failed user=%d error=%q", l.PublisherID, err.Error())
	}
	return nil
}

func (s *Service) checkTenants(ctx context.Context, tenantIDs []int64) error {
	for _, id := range tenantIDs {
		ok, err := s.users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTenantNotFound
		}
	}
	return nil
}

func (s *Service) geocode(ctx context.Context, l *domain.Listing) {
	query := strings.Join([]string{
		l.Address.Street + " " + l.Address.HouseNum,
		l.Address.CAP,
		l.Address.City,
		l.Address.Province,
		l.Address.Country,
	}, ", ")

	lat, lon, err := s.geocoder.Forward(ctx, query)
	if err != nil {
		log.Printf("listing: geocoding failed address=%q error=%q", query, err.Error())
		return
	}
	l.Latitude = &lat
	l.Longitude = &lon
}
