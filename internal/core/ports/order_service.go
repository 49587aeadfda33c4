package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// OrderItemInput is a requested order line.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries all data needed to place an order. UserID is the
// owner requested by the client; it is honoured only for admins.
type CreateOrderInput struct {
	Items            []OrderItemInput
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	UserID           string
	IdempotencyKey   string
}

// CreateOrderResult wraps the stored order. AlreadyExisted is true when the
// Idempotency-Key matched an order the caller placed before.
type CreateOrderResult struct {
	Order          *domain.Order
	AlreadyExisted bool
}

// OrderService defines order use cases. caller is the verified identity of
// the request; ownership rules are enforced here.
type OrderService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, caller domain.Identity, id string) (*domain.Order, error)
	Events(ctx context.Context, caller domain.Identity, id string) ([]*domain.OrderEvent, error)
	ListByUser(ctx context.Context, caller domain.Identity, userID string) ([]*domain.Order, error)
	Create(ctx context.Context, caller domain.Identity, input CreateOrderInput) (*CreateOrderResult, error)
	UpdateStatus(ctx context.Context, caller domain.Identity, id, status string) (*domain.Order, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
}
