package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/fieldcheck"
	"unidomus/internal/pkg/mailer"
	"unidomus/internal/pkg/retry"
	"unidomus/internal/repository"
)

type Service struct {
	repo     Repository
	users    UserEmailReader
	mail     mailer.Mailer
	retryCfg *retry.Config
}

func NewService(repo Repository, users UserEmailReader, mail mailer.Mailer) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		mail:     mail,
		retryCfg: retry.DefaultConfig(),
	}
}

// Notify writes the notification row and then, for medium and high priority,
// mirrors it to email. The write and the email are deliberately separate
// steps: the email is best-effort, at most once, and its failure never undoes
// or fails the write.
func (s *Service) Notify(ctx context.Context, userID int64, t domain.NotificationType, message, link string, priority domain.NotificationPriority) (*domain.Notification, error) {
	if !domain.ValidNotificationType(t) || !domain.ValidNotificationPriority(priority) {
		return nil, ErrValidation
	}
	if violations := fieldcheck.NotificationMessage(message); len(violations) > 0 {
		return nil, ErrValidation
	}

	n := &domain.Notification{
		UserID:   userID,
		Type:     t,
		Message:  message,
		Status:   domain.NotificationNotSeen,
		Priority: priority,
		Link:     link,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if priority != domain.PriorityLow {
		s.dispatchEmail(ctx, n)
	}

	return n, nil
}

func (s *Service) dispatchEmail(ctx context.Context, n *domain.Notification) {
	user, err := s.users.GetByID(ctx, n.UserID)
	if err != nil {
		log.Printf("notification: email skipped, user lookup failed id=%d error=%q", n.UserID, err.Error())
		return
	}

	subject := fmt.Sprintf("UniDomus: new %s notification", n.Type)
	body := n.Message
	if n.Link != "" {
		body += "\n\n" + n.Link
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err = retry.Do(sendCtx, s.retryCfg, "notification email", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.mail.Send(ctx, user.Email, subject, body)
	})
	if err != nil {
		log.Printf("notification: email delivery failed id=%d user=%d error=%q", n.ID, n.UserID, err.Error())
	}
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unseen, err := s.repo.CountUnseen(ctx, userID)
	if err != nil {
		unseen = 0
	}

	return list, unseen, nil
}

// MarkAllSeen is idempotent: a second call finds nothing left to flip.
func (s *Service) MarkAllSeen(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllSeen(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	err := s.repo.Delete(ctx, id, userID)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (s *Service) DeleteByFilter(ctx context.Context, f repository.NotificationFilter) (int64, error) {
	if f.UserID == 0 {
		return 0, ErrValidation
	}
	if f.Type != "" && !domain.ValidNotificationType(f.Type) {
		return 0, ErrValidation
	}
	if f.Priority != "" && !domain.ValidNotificationPriority(f.Priority) {
		return 0, ErrValidation
	}
	return s.repo.DeleteByFilter(ctx, f)
}
