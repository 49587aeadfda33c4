package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// AuditRepository persists the order_events audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.OrderEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]*domain.OrderEvent, error)
}

// EventPublisher hands order events to the asynchronous audit pipeline.
type EventPublisher interface {
	Publish(event domain.OrderEvent)
}
