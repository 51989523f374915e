package model

import "time"

// EventType names a lifecycle notification.
type EventType string

const (
	EventOrderAccepted  EventType = "order.accepted"
	EventOrderStarted   EventType = "order.started"
	EventOrderCompleted EventType = "order.completed"
	EventOrderPaid      EventType = "order.paid"
	EventOrderCancelled EventType = "order.cancelled"
)

// OrderEvent is published after a lifecycle transition has committed.
type OrderEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	WasherID   int64     `json:"washer_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
