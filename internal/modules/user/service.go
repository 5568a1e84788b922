package user

import (
	"context"
	"time"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/fieldcheck"
	"unidomus/internal/repository"
)

type Service struct {
	users Repository
	now   func() time.Time
}

func NewService(users Repository) *Service {
	return &Service{users: users, now: time.Now}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies a partial profile edit. Only the owner (or an admin)
// may edit; tags outside the vocabularies are dropped silently.
func (s *Service) UpdateProfile(ctx context.Context, targetID, actorID int64, actorAdmin bool, req UpdateProfileRequest) (*domain.User, []fieldcheck.FieldError, error) {
	if targetID != actorID && !actorAdmin {
		return nil, nil, ErrForbidden
	}

	violations := fieldcheck.User(fieldcheck.UserPayload{
		Name:            req.Name,
		Surname:         req.Surname,
		Habits:          req.Habits,
		Hobbies:         req.Hobbies,
		ProfilePictures: req.ProfilePictures,
	})
	if len(violations) > 0 {
		return nil, violations, nil
	}

	u, err := s.Get(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Surname != nil {
		u.Surname = *req.Surname
	}
	if req.BirthDate != nil {
		u.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		u.Gender = *req.Gender
	}
	if req.Habits != nil {
		u.Habits = validTags(*req.Habits, HabitTags)
	}
	if req.Hobbies != nil {
		u.Hobbies = validTags(*req.Hobbies, HobbyTags)
	}
	if req.ProfilePictures != nil {
		u.ProfilePictures = *req.ProfilePictures
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, nil, err
	}
	return u, nil, nil
}

// HousingSeekers lists active users still looking for housing. Admin callers
// see banned users too.
func (s *Service) HousingSeekers(ctx context.Context, actorAdmin bool) ([]domain.User, error) {
	return s.users.HousingSeekers(ctx, actorAdmin, s.now())
}
