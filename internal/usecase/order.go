package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
	"github.com/Lonewolf123457499/CarWashApp/internal/metrics"
)

const (
	defaultPendingLimit = 50
	maxPendingLimit     = 200
	defaultAdminLimit   = 100
	maxAdminLimit       = 500
	staleBatchSize      = 100
)

var (
	errOrderNotAssigned = domainErrors.New(domainErrors.ErrNotFound, "order not found or not assigned to you")
	errWasherInactive   = domainErrors.New(domainErrors.ErrForbidden, "washer account is deactivated")
)

// Notifier receives lifecycle events once the transition has committed.
// Implementations must not block.
type Notifier interface {
	Notify(event model.OrderEvent)
}

// OrderUseCase drives the order state machine.
type OrderUseCase struct {
	tx            repository.Transactor
	orders        repository.OrderRepository
	vehicles      repository.VehicleRepository
	receipts      repository.ReceiptRepository
	users         repository.UserRepository
	pricing       *PricingUseCase
	notifier      Notifier
	pendingExpiry time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	tx repository.Transactor,
	orders repository.OrderRepository,
	vehicles repository.VehicleRepository,
	receipts repository.ReceiptRepository,
	users repository.UserRepository,
	pricing *PricingUseCase,
	notifier Notifier,
	pendingExpiry time.Duration,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		tx:            tx,
		orders:        orders,
		vehicles:      vehicles,
		receipts:      receipts,
		users:         users,
		pricing:       pricing,
		notifier:      notifier,
		pendingExpiry: pendingExpiry,
		logger:        logger.With(slog.String("component", "orders")),
		now:           time.Now,
	}
}

// PlaceOrder prices the selection and stores a Pending order.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, customerID, vehicleID, packageID int64, addonIDs []int64, scheduledAt time.Time) (*model.Order, error) {
	if scheduledAt.IsZero() {
		return nil, domainErrors.New(domainErrors.ErrInvalidInput, "scheduled time is required")
	}
	if _, err := u.vehicles.GetForCustomer(ctx, vehicleID, customerID); err != nil {
		return nil, err
	}

	quote, err := u.pricing.Quote(ctx, packageID, addonIDs)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, model.NewOrder{
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		ScheduledAt: scheduledAt.UTC(),
		Quote:       *quote,
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	u.logger.InfoContext(ctx, "order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("customer_id", customerID),
		slog.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// ListPending returns unclaimed orders, earliest scheduled first.
func (u *OrderUseCase) ListPending(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = defaultPendingLimit
	}
	if limit > maxPendingLimit {
		limit = maxPendingLimit
	}
	return u.orders.ListPending(ctx, limit)
}

// ListByCustomer returns the customer's orders, latest scheduled first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// ListByWasher returns the orders a washer holds or held.
func (u *OrderUseCase) ListByWasher(ctx context.Context, washerID int64) ([]model.Order, error) {
	return u.orders.ListByWasher(ctx, washerID)
}

// ListAll returns orders newest first for admins. An empty status lists
// every status.
func (u *OrderUseCase) ListAll(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, domainErrors.Newf(domainErrors.ErrInvalidInput, "unknown order status %q", status)
	}
	if limit <= 0 {
		limit = defaultAdminLimit
	}
	if limit > maxAdminLimit {
		limit = maxAdminLimit
	}
	return u.orders.ListAll(ctx, status, limit)
}

// Get returns the order when the identity may see it. Orders of others are
// reported as missing.
func (u *OrderUseCase) Get(ctx context.Context, identity model.Identity, orderID int64) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.VisibleTo(identity) {
		return nil, domainErrors.New(domainErrors.ErrNotFound, "order not found")
	}
	return order, nil
}

// Claim assigns a Pending order to the washer and issues its receipt in the
// same transaction. Exactly one of several concurrent claims succeeds.
func (u *OrderUseCase) Claim(ctx context.Context, washerID, orderID int64) (*model.Order, *model.Receipt, error) {
	if err := u.ensureActiveWasher(ctx, washerID); err != nil {
		return nil, nil, err
	}

	var (
		order   *model.Order
		receipt *model.Receipt
	)
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		claimed, applied, err := u.orders.Claim(ctx, orderID, washerID)
		if err != nil {
			return err
		}
		if !applied {
			return domainErrors.New(domainErrors.ErrConflict, "order is no longer available")
		}

		details, err := u.orders.Details(ctx, orderID)
		if err != nil {
			return err
		}
		receipt, err = u.receipts.Create(ctx, model.NewReceipt(*details, u.now().UTC()))
		if err != nil {
			return err
		}
		order = claimed
		return nil
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrConflict) {
			metrics.OrderClaims.WithLabelValues(metrics.ClaimLost).Inc()
		}
		return nil, nil, err
	}

	metrics.OrderClaims.WithLabelValues(metrics.ClaimWon).Inc()
	u.committed(ctx, model.EventOrderAccepted, order)
	return order, receipt, nil
}

// ensureActiveWasher rejects claims from deactivated accounts whose tokens
// have not expired yet. Work already held may still be finished.
func (u *OrderUseCase) ensureActiveWasher(ctx context.Context, washerID int64) error {
	washer, err := u.users.GetByID(ctx, washerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return errWasherInactive
		}
		return err
	}
	if !washer.Active || washer.Role != model.RoleWasher {
		return errWasherInactive
	}
	return nil
}

// Start moves the washer's Assigned order to InProgress.
func (u *OrderUseCase) Start(ctx context.Context, washerID, orderID int64) (*model.Order, error) {
	order, applied, err := u.orders.Start(ctx, orderID, washerID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, u.washerTransitionError(ctx, orderID, washerID, "start")
	}
	u.committed(ctx, model.EventOrderStarted, order)
	return order, nil
}

// Complete moves the washer's InProgress order to Completed.
func (u *OrderUseCase) Complete(ctx context.Context, washerID, orderID int64, imageRef string) (*model.Order, error) {
	order, applied, err := u.orders.Complete(ctx, orderID, washerID, strings.TrimSpace(imageRef))
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, u.washerTransitionError(ctx, orderID, washerID, "complete")
	}
	u.committed(ctx, model.EventOrderCompleted, order)
	return order, nil
}

// washerTransitionError explains why a washer's conditional update changed
// nothing, from a fresh read of the order.
func (u *OrderUseCase) washerTransitionError(ctx context.Context, orderID, washerID int64, action string) error {
	current, err := u.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return errOrderNotAssigned
		}
		return err
	}
	if !current.AssignedTo(washerID) {
		return errOrderNotAssigned
	}
	return domainErrors.Newf(domainErrors.ErrInvalidState, "cannot %s order in status %s", action, current.Status)
}

// Cancel withdraws a Pending order on behalf of its customer.
func (u *OrderUseCase) Cancel(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	order, applied, err := u.orders.Cancel(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	if !applied {
		current, err := u.orders.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if current.CustomerID != customerID {
			return nil, domainErrors.New(domainErrors.ErrNotFound, "order not found")
		}
		return nil, domainErrors.Newf(domainErrors.ErrInvalidState, "cannot cancel order in status %s", current.Status)
	}
	u.committed(ctx, model.EventOrderCancelled, order)
	return order, nil
}

// CancelStale cancels Pending orders whose scheduled time passed more than
// the configured expiry ago. It returns the number of cancelled orders.
func (u *OrderUseCase) CancelStale(ctx context.Context) (int, error) {
	before := u.now().Add(-u.pendingExpiry)
	total := 0
	for {
		cancelled, err := u.orders.CancelStalePending(ctx, before, staleBatchSize)
		if err != nil {
			return total, err
		}
		for i := range cancelled {
			u.committed(ctx, model.EventOrderCancelled, &cancelled[i])
		}
		total += len(cancelled)
		if len(cancelled) < staleBatchSize {
			return total, nil
		}
	}
}

// Receipt returns the receipt of the customer's order.
func (u *OrderUseCase) Receipt(ctx context.Context, customerID, orderID int64) (*model.Receipt, error) {
	return u.receipts.GetByOrder(ctx, orderID, customerID)
}

// committed records an applied transition and hands the event to the notifier.
func (u *OrderUseCase) committed(ctx context.Context, eventType model.EventType, order *model.Order) {
	metrics.OrderTransitions.WithLabelValues(string(order.Status)).Inc()
	u.logger.InfoContext(ctx, "order transitioned",
		slog.Int64("order_id", order.ID),
		slog.String("status", string(order.Status)),
	)
	u.notifier.Notify(newEvent(eventType, order, u.now()))
}

func newEvent(eventType model.EventType, order *model.Order, at time.Time) model.OrderEvent {
	event := model.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		OccurredAt: at.UTC(),
	}
	if order.WasherID != nil {
		event.WasherID = *order.WasherID
	}
	return event
}
