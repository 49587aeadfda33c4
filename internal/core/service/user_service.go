package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/access"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const profileResource = "profile"

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Get returns the profile with the given id. Non-admins may only read their
// own profile.
func (s *UserService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	if err := access.CheckOwner(caller, id, profileResource); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Create registers a user on behalf of an admin, honouring the admin flag.
func (s *UserService) Create(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	user, err := newUser(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Bool("is_admin", created.IsAdmin).Msg("user created by admin")
	return created, nil
}

// Update applies a partial profile update. Non-admins may only update their
// own profile and can never change the admin flag; the password hash is kept
// when no new password is supplied.
func (s *UserService) Update(ctx context.Context, caller domain.Identity, id string, in ports.ProfileInput) (*domain.User, error) {
	if err := access.CheckOwnerUpdate(caller, id, profileResource); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	setIfPresent(&updated.Name, in.Name)
	setIfPresent(&updated.Email, normalizeEmail(in.Email))
	setIfPresent(&updated.Phone, in.Phone)
	setIfPresent(&updated.Street, in.Street)
	setIfPresent(&updated.Apartment, in.Apartment)
	setIfPresent(&updated.Zip, in.Zip)
	setIfPresent(&updated.City, in.City)
	setIfPresent(&updated.Country, in.Country)

	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}
	if caller.IsAdmin && in.IsAdmin != nil {
		updated.IsAdmin = *in.IsAdmin
	}
	updated.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, &updated)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
