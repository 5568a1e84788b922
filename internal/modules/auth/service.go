package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/fieldcheck"
	"unidomus/internal/pkg/jwt"
	"unidomus/internal/pkg/mailer"
	"unidomus/internal/pkg/retry"
	"unidomus/internal/repository"
)

type Service struct {
	users    UserRepository
	tokens   TokenRepository
	google   GoogleVerifier
	jwt      *jwt.Service
	mail     mailer.Mailer
	tokenTTL time.Duration
	appURL   string
	retryCfg *retry.Config
	now      func() time.Time
}

func NewService(users UserRepository, tokens TokenRepository, google GoogleVerifier, jwtSvc *jwt.Service, mail mailer.Mailer, tokenTTL time.Duration, appURL string) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		google:   google,
		jwt:      jwtSvc,
		mail:     mail,
		tokenTTL: tokenTTL,
		appURL:   appURL,
		retryCfg: retry.DefaultConfig(),
		now:      time.Now,
	}
}

// RegisterResult carries the created user; the account stays inactive until
// the emailed token is confirmed.
type RegisterResult struct {
	User *domain.User
}

// Register creates an inactive account and emails the activation link. The
// email is best-effort: a delivery failure is logged, not returned.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, []fieldcheck.FieldError, error) {
	violations := fieldcheck.User(fieldcheck.UserPayload{
		Email:    &req.Email,
		Username: &req.Username,
		Password: &req.Password,
	})
	if len(violations) > 0 {
		return nil, violations, nil
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	u := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Active:       false,
		Habits:       []string{},
		Hobbies:      []string{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			if dup.Field == "username" {
				return nil, nil, ErrUsernameAlreadyExists
			}
			return nil, nil, ErrEmailAlreadyExists
		}
		return nil, nil, err
	}

	token := &domain.EmailVerificationToken{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: s.now().Add(s.tokenTTL),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, nil, err
	}

	s.sendActivationEmail(ctx, u.Email, token.Token)

	return &RegisterResult{User: u}, nil, nil
}

// Authenticate verifies credentials against the local password hash. The
// identifier may be an email address or a username. Banned accounts cannot
// log in while their window is active.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	u, err := s.lookup(ctx, identifier)
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if u.HasExternalIdentity() && u.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := CheckPassword(password, u.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Active {
		return "", nil, ErrAccountNotActive
	}
	if u.Ban.Active(s.now()) {
		return "", nil, ErrAccountBanned
	}

	token, err := s.jwt.GenerateToken(u.ID, u.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// GoogleLogin verifies the ID token and signs the user in, creating the
// account on first sight. Google accounts are active immediately: the
// address is already verified upstream.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (string, *domain.User, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, ErrInvalidGoogleToken) {
			return "", nil, ErrInvalidGoogleToken
		}
		return "", nil, err
	}

	u, err := s.users.GetByEmail(ctx, identity.Email)
	switch {
	case err == repository.ErrNotFound:
		u = &domain.User{
			Email:    strings.ToLower(identity.Email),
			Username: usernameFromEmail(identity.Email, identity.Subject),
			GoogleID: identity.Subject,
			Name:     identity.Name,
			Active:   true,
			Habits:   []string{},
			Hobbies:  []string{},
		}
		if err := s.users.Create(ctx, u); err != nil {
			return "", nil, err
		}
	case err != nil:
		return "", nil, err
	default:
		if u.GoogleID == "" {
			u.GoogleID = identity.Subject
			if err := s.users.Update(ctx, u); err != nil {
				return "", nil, err
			}
		}
	}

	if u.Ban.Active(s.now()) {
		return "", nil, ErrAccountBanned
	}

	token, err := s.jwt.GenerateToken(u.ID, u.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ConfirmEmail activates the account behind a verification token and burns
// the token.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	t, err := s.tokens.Get(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrInvalidVerifyToken
		}
		return err
	}
	if t.Expired(s.now()) {
		_ = s.tokens.Delete(ctx, token)
		return ErrInvalidVerifyToken
	}

	u, err := s.users.GetByID(ctx, t.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrInvalidVerifyToken
		}
		return err
	}

	u.Active = true
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	if err := s.tokens.Delete(ctx, token); err != nil {
		log.Printf("auth: verification token cleanup failed token=%s error=%q", token, err.Error())
	}
	return nil
}

func (s *Service) lookup(ctx context.Context, identifier string) (*domain.User, error) {
	if strings.Contains(identifier, "@") {
		return s.users.GetByEmail(ctx, identifier)
	}
	return s.users.GetByUsername(ctx, identifier)
}

func (s *Service) sendActivationEmail(ctx context.Context, email, token string) {
	link := fmt.Sprintf("%s/users/confirm/%s", s.appURL, token)
	body := "Welcome to UniDomus!\n\nActivate your account:\n" + link

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := retry.Do(sendCtx, s.retryCfg, "activation email", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.mail.Send(ctx, email, "Activate your UniDomus account", body)
	})
	if err != nil {
		log.Printf("auth: activation email failed email=%s error=%q", email, err.Error())
	}
}

// usernameFromEmail derives a non-conflicting default username for accounts
// created through Google.
func usernameFromEmail(email, sub string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	local = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return -1
	}, local)
	if len(local) > 12 {
		local = local[:12]
	}
	suffix := sub
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return local + "_" + suffix
}
