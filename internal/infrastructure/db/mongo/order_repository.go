package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/shop-api/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(ordersCollection)}
}

type orderItemDoc struct {
	Product   primitive.ObjectID `bson:"product"`
	Quantity  int                `bson:"quantity"`
	UnitPrice float64            `bson:"unit_price"`
}

// orderDoc embeds its items, so deleting an order removes them too.
type orderDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Items            []orderItemDoc     `bson:"order_items"`
	ShippingAddress1 string             `bson:"shipping_address1"`
	ShippingAddress2 string             `bson:"shipping_address2,omitempty"`
	City             string             `bson:"city"`
	Zip              string             `bson:"zip"`
	Country          string             `bson:"country"`
	Phone            string             `bson:"phone"`
	Status           string             `bson:"status"`
	TotalPrice       float64            `bson:"total_price"`
	User             primitive.ObjectID `bson:"user"`
	DateOrdered      time.Time          `bson:"date_ordered"`
	IdempotencyKey   string             `bson:"idempotency_key,omitempty"`
}

func toOrderDoc(o *domain.Order) (orderDoc, error) {
	user, err := objectID(o.UserID)
	if err != nil {
		return orderDoc{}, err
	}
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		pid, err := objectID(it.ProductID)
		if err != nil {
			return orderDoc{}, domain.ErrProductNotFound
		}
		items = append(items, orderItemDoc{Product: pid, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return orderDoc{
		Items:            items,
		ShippingAddress1: o.ShippingAddress1,
		ShippingAddress2: o.ShippingAddress2,
		City:             o.City,
		Zip:              o.Zip,
		Country:          o.Country,
		Phone:            o.Phone,
		Status:           string(o.Status),
		TotalPrice:       o.TotalPrice,
		User:             user,
		DateOrdered:      o.DateOrdered,
		IdempotencyKey:   o.IdempotencyKey,
	}, nil
}

func (d orderDoc) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.Product.Hex(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &domain.Order{
		ID:               d.ID.Hex(),
		Items:            items,
		ShippingAddress1: d.ShippingAddress1,
		ShippingAddress2: d.ShippingAddress2,
		City:             d.City,
		Zip:              d.Zip,
		Country:          d.Country,
		Phone:            d.Phone,
		Status:           domain.OrderStatus(d.Status),
		TotalPrice:       d.TotalPrice,
		UserID:           d.User.Hex(),
		DateOrdered:      d.DateOrdered.UTC(),
		IdempotencyKey:   d.IdempotencyKey,
	}
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	doc, err := toOrderDoc(o)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByIdempotencyKey retrieves an order the user created with the given key.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error) {
	user, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"user": user, "idempotency_key": key})
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	user, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"user": user})
}

// find returns the matching orders newest first.
func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date_ordered", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes the order and returns it as it was stored.
func (r *OrderRepository) Delete(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("delete order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// TotalSales sums total_price over all orders; it is 0 when there are none.
func (r *OrderRepository) TotalSales(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_sales", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate sales: %w", err)
	}
	var rows []struct {
		TotalSales float64 `bson:"total_sales"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode sales: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalSales, nil
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date_ordered", Value: -1}}},
		{Keys: bson.D{{Key: "date_ordered", Value: -1}}},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
