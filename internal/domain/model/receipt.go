package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is generated once, when a washer claims the order.
type Receipt struct {
	ID          int64
	OrderID     int64
	Number      string
	Details     string
	Total       decimal.Decimal
	CreatedAt   time.Time
	OrderStatus OrderStatus
}

// ReceiptNumber derives the human readable receipt number from the creation
// date and the order identifier.
func ReceiptNumber(createdAt time.Time, orderID int64) string {
	return fmt.Sprintf("GCW-%s-%06d", createdAt.UTC().Format("20060102"), orderID)
}

// NewReceipt renders the service snapshot of an order.
func NewReceipt(d OrderDetails, now time.Time) Receipt {
	addons := "None"
	if len(d.AddonNames) > 0 {
		addons = strings.Join(d.AddonNames, ", ")
	}

	details := strings.Join([]string{
		"Service: " + d.PackageName,
		fmt.Sprintf("Vehicle: %s %s (%s)", d.VehicleMake, d.VehicleModel, d.LicensePlate),
		"Addons: " + addons,
		"Scheduled: " + d.ScheduledAt.Format("2006-01-02 15:04"),
	}, "\n")

	return Receipt{
		OrderID:   d.OrderID,
		Number:    ReceiptNumber(now, d.OrderID),
		Details:   details,
		Total:     d.Total,
		CreatedAt: now,
	}
}
