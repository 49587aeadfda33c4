package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/shop-api/internal/core/domain"
)

const orderEventsCollection = "order_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(orderEventsCollection)}
}

type orderEventDoc struct {
	OrderID    string    `bson:"order_id"`
	ActorID    string    `bson:"actor_id"`
	Type       string    `bson:"type"`
	Status     string    `bson:"status,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Insert persists an order event to the order_events audit collection.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := orderEventDoc{
		OrderID:    e.OrderID,
		ActorID:    e.ActorID,
		Type:       string(e.Type),
		Status:     string(e.Status),
		OccurredAt: e.OccurredAt.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// ListByOrder returns the events of an order oldest first.
func (r *AuditRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.OrderEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list order events: %w", err)
	}
	var docs []orderEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode order events: %w", err)
	}

	events := make([]*domain.OrderEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, &domain.OrderEvent{
			OrderID:    d.OrderID,
			ActorID:    d.ActorID,
			Type:       domain.OrderEventType(d.Type),
			Status:     domain.OrderStatus(d.Status),
			OccurredAt: d.OccurredAt.UTC(),
		})
	}
	return events, nil
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	return err
}
