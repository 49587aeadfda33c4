package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ProductInput carries the fields for a new catalogue product.
type ProductInput struct {
	Name         string
	Description  string
	Price        float64
	CountInStock int
}

type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
