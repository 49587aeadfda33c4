package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders. List methods
// return orders newest first.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindByIdempotencyKey retrieves an order previously created by userID
	// with the given key.
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) (*domain.Order, error)
	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
}
