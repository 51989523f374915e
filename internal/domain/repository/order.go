package repository

import (
	"context"
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Transition methods are single conditional updates keyed on the expected
// prior status. They report applied=false when the precondition did not hold;
// callers decide what that means and never retry the write blindly.
type OrderRepository interface {
	Create(ctx context.Context, order model.NewOrder) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	ListPending(ctx context.Context, limit int) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByWasher(ctx context.Context, washerID int64) ([]model.Order, error)
	// ListAll returns orders newest first, optionally narrowed to one status.
	ListAll(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
	Details(ctx context.Context, id int64) (*model.OrderDetails, error)

	Claim(ctx context.Context, id, washerID int64) (*model.Order, bool, error)
	Start(ctx context.Context, id, washerID int64) (*model.Order, bool, error)
	Complete(ctx context.Context, id, washerID int64, imageRef string) (*model.Order, bool, error)
	Cancel(ctx context.Context, id, customerID int64) (*model.Order, bool, error)
	CancelStalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error)

	SetGatewayRef(ctx context.Context, id int64, gatewayOrderRef string) (bool, error)
	MarkPaid(ctx context.Context, id int64, gatewayOrderRef, gatewayPaymentRef string) (*model.Order, bool, error)
}
