package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/access"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const ordersResource = "orders"

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	audit    ports.AuditRepository
	events   ports.EventPublisher
	log      zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	audit ports.AuditRepository,
	events ports.EventPublisher,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		audit:    audit,
		events:   events,
		log:      log,
	}
}

// List returns every order, newest first. The route is admin only.
func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// Get returns a single order. A missing order is reported before any
// ownership decision.
func (s *OrderService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckOwner(caller, order.OwnerID(), ordersResource); err != nil {
		return nil, err
	}
	return order, nil
}

// Events returns the audit trail of an order the caller may read.
func (s *OrderService) Events(ctx context.Context, caller domain.Identity, id string) ([]*domain.OrderEvent, error) {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.audit.ListByOrder(ctx, id)
}

// ListByUser returns the orders owned by userID.
func (s *OrderService) ListByUser(ctx context.Context, caller domain.Identity, userID string) ([]*domain.Order, error) {
	if err := access.CheckOwner(caller, userID, ordersResource); err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, userID)
}

// Create places an order. The owner is always the caller unless the caller is
// an admin, and only admins may choose the initial status. If an idempotency
// key is provided and already used by the owner, the stored order is returned.
func (s *OrderService) Create(ctx context.Context, caller domain.Identity, in ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	owner := access.OwnerFor(caller, in.UserID)

	if in.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, owner, in.IdempotencyKey)
		switch {
		case err == nil:
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("order_id", existing.ID).Msg("idempotent replay")
			return &ports.CreateOrderResult{Order: existing, AlreadyExisted: true}, nil
		case !errors.Is(err, domain.ErrOrderNotFound):
			return nil, fmt.Errorf("create order: %w", err)
		}
	}

	status := domain.OrderPending
	if caller.IsAdmin && in.Status != "" {
		status = domain.OrderStatus(in.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	items, total, err := s.priceItems(ctx, in.Items)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	order := &domain.Order{
		Items:            items,
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           status,
		TotalPrice:       total,
		UserID:           owner,
		DateOrdered:      time.Now().UTC(),
		IdempotencyKey:   in.IdempotencyKey,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.publish(created.ID, caller.UserID, domain.OrderEventCreated, created.Status)
	s.log.Info().
		Str("order_id", created.ID).
		Str("user_id", owner).
		Float64("total", created.TotalPrice).
		Msg("order created")

	return &ports.CreateOrderResult{Order: created}, nil
}

// priceItems resolves every product and returns the priced lines and the order
// total rounded to cents.
func (s *OrderService) priceItems(ctx context.Context, in []ports.OrderItemInput) ([]domain.OrderItem, float64, error) {
	items := make([]domain.OrderItem, 0, len(in))
	var total float64
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, 0, domain.ErrInvalidQuantity
		}
		product, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(it.Quantity)
	}
	return items, math.Round(total*100) / 100, nil
}

// UpdateStatus changes the fulfilment status of an order.
func (s *OrderService) UpdateStatus(ctx context.Context, caller domain.Identity, id, status string) (*domain.Order, error) {
	next := domain.OrderStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orders.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.publish(order.ID, caller.UserID, domain.OrderEventStatusUpdated, next)
	return order, nil
}

// Delete removes an order together with its items.
func (s *OrderService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	order, err := s.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.publish(order.ID, caller.UserID, domain.OrderEventDeleted, order.Status)
	s.log.Info().Str("order_id", order.ID).Str("actor_id", caller.UserID).Msg("order deleted")
	return nil
}

func (s *OrderService) Count(ctx context.Context) (int64, error) {
	return s.orders.Count(ctx)
}

func (s *OrderService) TotalSales(ctx context.Context) (float64, error) {
	return s.orders.TotalSales(ctx)
}

func (s *OrderService) publish(orderID, actorID string, typ domain.OrderEventType, status domain.OrderStatus) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.OrderEvent{
		OrderID:    orderID,
		ActorID:    actorID,
		Type:       typ,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	})
}
