package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UserService defines user management use cases. caller is the verified
// identity of the request; ownership rules are enforced here.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
	Create(ctx context.Context, input ProfileInput) (*domain.User, error)
	Update(ctx context.Context, caller domain.Identity, id string, input ProfileInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
