package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAuthService wires the auth use cases. limiter may be nil, in which case
// failed logins are not throttled.
func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a non-admin account. Any admin flag in the input is
// discarded; admins are created through UserService.Create.
func (s *AuthService) Register(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	in.IsAdmin = nil
	user, err := newUser(in)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login checks the credentials and returns a signed token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		locked, err := s.limiter.Locked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter check failed, continuing")
		} else if locked {
			return "", nil, domain.ErrAccountLocked
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login attempts")
		}
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login attempt")
	}
}

// newUser builds a user document from the input, hashing the password.
func newUser(in ports.ProfileInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return nil, domain.ErrProfileIncomplete
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		IsAdmin:      in.IsAdmin != nil && *in.IsAdmin,
		Street:       in.Street,
		Apartment:    in.Apartment,
		Zip:          in.Zip,
		City:         in.City,
		Country:      in.Country,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
