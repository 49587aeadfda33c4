package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ProfileInput carries the user fields accepted on registration and update.
// Empty strings and a nil IsAdmin leave the stored value unchanged on update.
type ProfileInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	IsAdmin   *bool
	Street    string
	Apartment string
	Zip       string
	City      string
	Country   string
}

// AuthService handles public registration and login.
type AuthService interface {
	Register(ctx context.Context, input ProfileInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
