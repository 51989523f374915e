package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the wash order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusAssigned   OrderStatus = "Assigned"
	OrderStatusInProgress OrderStatus = "InProgress"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusPaid       OrderStatus = "Paid"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// transitions lists the only legal edges of the lifecycle graph.
var transitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusAssigned,
	OrderStatusAssigned:   OrderStatusInProgress,
	OrderStatusInProgress: OrderStatusCompleted,
	OrderStatusCompleted:  OrderStatusPaid,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAssigned, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next directly follows s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == OrderStatusPending && next == OrderStatusCancelled {
		return true
	}
	to, ok := transitions[s]
	return ok && to == next
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// Rateable reports whether an order in status s may receive a rating.
func (s OrderStatus) Rateable() bool {
	return s == OrderStatusCompleted || s == OrderStatusPaid
}

// Order is a customer's wash request. Total is captured at placement and is
// never re-derived from the catalog.
type Order struct {
	ID                int64
	CustomerID        int64
	WasherID          *int64
	VehicleID         int64
	PackageID         int64
	AddonIDs          []int64
	ScheduledAt       time.Time
	CompletedAt       *time.Time
	Status            OrderStatus
	Total             decimal.Decimal
	ImageRef          string
	GatewayOrderRef   string
	GatewayPaymentRef string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AssignedTo reports whether the order is held by the given washer.
func (o *Order) AssignedTo(washerID int64) bool {
	return o.WasherID != nil && *o.WasherID == washerID
}

// VisibleTo reports whether the identity may read the order.
func (o *Order) VisibleTo(id Identity) bool {
	switch id.Role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return o.CustomerID == id.UserID
	case RoleWasher:
		return o.AssignedTo(id.UserID)
	}
	return false
}

// NewOrder describes an order ready to be persisted by placement.
type NewOrder struct {
	CustomerID  int64
	VehicleID   int64
	ScheduledAt time.Time
	Quote       Quote
}

// OrderDetails is the snapshot used to render a receipt.
type OrderDetails struct {
	OrderID      int64
	PackageName  string
	VehicleMake  string
	VehicleModel string
	LicensePlate string
	AddonNames   []string
	ScheduledAt  time.Time
	Total        decimal.Decimal
}
