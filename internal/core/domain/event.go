package domain

import "time"

// OrderEventType names a step in an order's lifecycle.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "created"
	OrderEventStatusUpdated OrderEventType = "status_updated"
	OrderEventDeleted       OrderEventType = "deleted"
)

// OrderEvent is an audit record of a change applied to an order.
type OrderEvent struct {
	OrderID    string         `json:"orderId"`
	ActorID    string         `json:"actorId"`
	Type       OrderEventType `json:"type"`
	Status     OrderStatus    `json:"status,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
