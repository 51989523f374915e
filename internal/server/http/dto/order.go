package dto

import (
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// PlaceOrderRequest describes a new wash booking.
type PlaceOrderRequest struct {
	VehicleID   int64     `json:"vehicle_id"`
	PackageID   int64     `json:"package_id"`
	AddonIDs    []int64   `json:"addon_ids"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// CompleteOrderRequest optionally references the after-wash image.
type CompleteOrderRequest struct {
	ImageRef string `json:"image_ref"`
}

// OrderResponse is the public view of an order. Payment references stay
// server-side except the gateway order used for checkout.
type OrderResponse struct {
	ID              int64      `json:"id"`
	CustomerID      int64      `json:"customer_id"`
	WasherID        *int64     `json:"washer_id,omitempty"`
	VehicleID       int64      `json:"vehicle_id"`
	PackageID       int64      `json:"package_id"`
	AddonIDs        []int64    `json:"addon_ids"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Status          string     `json:"status"`
	Total           string     `json:"total"`
	ImageRef        string     `json:"image_ref,omitempty"`
	GatewayOrderRef string     `json:"gateway_order_ref,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ReceiptResponse is the receipt with the current order status.
type ReceiptResponse struct {
	Number      string    `json:"number"`
	OrderID     int64     `json:"order_id"`
	Details     string    `json:"details"`
	Total       string    `json:"total"`
	OrderStatus string    `json:"order_status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClaimResponse is returned to the washer who won the claim.
type ClaimResponse struct {
	Order   OrderResponse   `json:"order"`
	Receipt ReceiptResponse `json:"receipt"`
}

func NewOrderResponse(o model.Order) OrderResponse {
	addons := o.AddonIDs
	if addons == nil {
		addons = []int64{}
	}
	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		WasherID:        o.WasherID,
		VehicleID:       o.VehicleID,
		PackageID:       o.PackageID,
		AddonIDs:        addons,
		ScheduledAt:     o.ScheduledAt,
		CompletedAt:     o.CompletedAt,
		Status:          string(o.Status),
		Total:           o.Total.StringFixed(2),
		ImageRef:        o.ImageRef,
		GatewayOrderRef: o.GatewayOrderRef,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func NewOrderListResponse(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

func NewReceiptResponse(r model.Receipt) ReceiptResponse {
	return ReceiptResponse{
		Number:      r.Number,
		OrderID:     r.OrderID,
		Details:     r.Details,
		Total:       r.Total.StringFixed(2),
		OrderStatus: string(r.OrderStatus),
		CreatedAt:   r.CreatedAt,
	}
}
