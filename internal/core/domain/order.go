package domain

import "time"

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a single order line. UnitPrice is the product price captured at
// order time.
type OrderItem struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is owned by exactly one user (UserID). Ownership never changes after
// creation.
type Order struct {
	ID               string      `json:"id"`
	Items            []OrderItem `json:"orderItems"`
	ShippingAddress1 string      `json:"shippingAddress1"`
	ShippingAddress2 string      `json:"shippingAddress2,omitempty"`
	City             string      `json:"city"`
	Zip              string      `json:"zip"`
	Country          string      `json:"country"`
	Phone            string      `json:"phone"`
	Status           OrderStatus `json:"status"`
	TotalPrice       float64     `json:"totalPrice"`
	UserID           string      `json:"user"`
	DateOrdered      time.Time   `json:"dateOrdered"`
	IdempotencyKey   string      `json:"-"`
}

// OwnerID returns the id of the user the order belongs to.
func (o *Order) OwnerID() string {
	return o.UserID
}
