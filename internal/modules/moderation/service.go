package moderation

import (
	"context"
	"fmt"
	"log"
	"time"

	"unidomus/internal/domain"
	"unidomus/internal/repository"
)

// TargetKind selects which collection a ban operates on.
type TargetKind string

const (
	TargetUser    TargetKind = "user"
	TargetListing TargetKind = "listing"
)

// BanParams describes a requested ban. Exactly one of Permanent or a positive
// DurationSeconds must be provided.
type BanParams struct {
	Permanent       bool
	DurationSeconds int64
	Message         string
}

type Service struct {
	users    UserRepository
	listings ListingRepository
	notifier NotificationSender
	now      func() time.Time
}

func NewService(users UserRepository, listings ListingRepository, notifier NotificationSender) *Service {
	return &Service{
		users:    users,
		listings: listings,
		notifier: notifier,
		now:      time.Now,
	}
}

// ApplyBan sets the ban sub-record on the target and notifies the owning
// user. Temporary bans expire at now + duration + the grace offset; the
// offset absorbs clock skew between the admin's machine and the server.
func (s *Service) ApplyBan(ctx context.Context, kind TargetKind, targetID int64, params BanParams) (*domain.Ban, error) {
	if !params.Permanent && params.DurationSeconds <= 0 {
		return nil, ErrInvalidBan
	}

	prev, ownerID, err := s.loadBanState(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	ban := domain.Ban{
		BanPermanently: params.Permanent,
		BanMsg:         params.Message,
		PrevBanNum:     prev.PrevBanNum + 1,
	}
	if !params.Permanent {
		expiry := s.now().Add(time.Duration(params.DurationSeconds)*time.Second + domain.BanGraceOffset)
		ban.BanTime = &expiry
	}

	if err := s.storeBan(ctx, kind, targetID, ban); err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if params.Permanent {
		priority = domain.PriorityHigh
	}
	s.notifyOwner(ctx, ownerID, banMessage(kind, params), priority)

	return &ban, nil
}

// LiftBan clears the ban sub-record, keeping the historical counter.
func (s *Service) LiftBan(ctx context.Context, kind TargetKind, targetID int64) error {
	prev, ownerID, err := s.loadBanState(ctx, kind, targetID)
	if err != nil {
		return err
	}

	ban := prev
	ban.Clear()
	if err := s.storeBan(ctx, kind, targetID, ban); err != nil {
		return err
	}

	s.notifyOwner(ctx, ownerID, unbanMessage(kind), domain.PriorityMedium)
	return nil
}

// IsCurrentlyBanned is the single definition of the suppression window used
// by query filtering and login checks alike.
func IsCurrentlyBanned(ban domain.Ban, now time.Time) bool {
	return ban.Active(now)
}

func (s *Service) loadBanState(ctx context.Context, kind TargetKind, targetID int64) (domain.Ban, int64, error) {
	switch kind {
	case TargetUser:
		u, err := s.users.GetByID(ctx, targetID)
		if err != nil {
			if err == repository.ErrNotFound {
				return domain.Ban{}, 0, ErrTargetNotFound
			}
			return domain.Ban{}, 0, err
		}
		return u.Ban, u.ID, nil
	case TargetListing:
		l, err := s.listings.GetByID(ctx, targetID)
		if err != nil {
			if err == repository.ErrNotFound {
				return domain.Ban{}, 0, ErrTargetNotFound
			}
			return domain.Ban{}, 0, err
		}
		return l.Ban, l.PublisherID, nil
	}
	return domain.Ban{}, 0, ErrInvalidBan
}

func (s *Service) storeBan(ctx context.Context, kind TargetKind, targetID int64, ban domain.Ban) error {
	var err error
	switch kind {
	case TargetUser:
		err = s.users.SetBan(ctx, targetID, ban)
	case TargetListing:
		err = s.listings.SetBan(ctx, targetID, ban)
	default:
		return ErrInvalidBan
	}
	if err == repository.ErrNotFound {
		return ErrTargetNotFound
	}
	return err
}

func (s *Service) notifyOwner(ctx context.Context, ownerID int64, message string, priority domain.NotificationPriority) {
	if _, err := s.notifier.Notify(ctx, ownerID, domain.NotificationAlert, message, "", priority); err != nil {
		log.Printf("moderation: ban notification failed user=%d error=%q", ownerID, err.Error())
	}
}

func banMessage(kind TargetKind, params BanParams) string {
	subject := "Your account"
	if kind == TargetListing {
		subject = "Your listing"
	}
	if params.Permanent {
		return fmt.Sprintf("%s has been permanently banned. Reason: %s", subject, params.Message)
	}
	return fmt.Sprintf("%s has been banned for %s. Reason: %s",
		subject, (time.Duration(params.DurationSeconds) * time.Second).String(), params.Message)
}

func unbanMessage(kind TargetKind) string {
	if kind == TargetListing {
		return "Your listing has been unbanned and is visible again."
	}
	return "Your account has been unbanned."
}
