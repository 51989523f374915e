package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/gateway"
	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/lock"
	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
	"github.com/Lonewolf123457499/CarWashApp/internal/metrics"
	"github.com/Lonewolf123457499/CarWashApp/internal/pkg/payment"
)

const intentLockTTL = 30 * time.Second

var hundred = decimal.NewFromInt(100)

// PaymentUseCase opens gateway payments and settles verified callbacks.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	gateway  gateway.Client
	locker   lock.Locker
	signer   *payment.Signer
	currency string
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	client gateway.Client,
	locker lock.Locker,
	signer *payment.Signer,
	currency string,
	notifier Notifier,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:   orders,
		gateway:  client,
		locker:   locker,
		signer:   signer,
		currency: currency,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "payments")),
		now:      time.Now,
	}
}

// CreatePaymentIntent opens a gateway order for the customer's order. It is
// idempotent: once a gateway reference is stored it is returned as is.
func (u *PaymentUseCase) CreatePaymentIntent(ctx context.Context, customerID, orderID int64, amount decimal.Decimal) (*model.PaymentIntent, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.New(domainErrors.ErrInvalidInput, "amount must be positive")
	}

	order, err := u.customerOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domainErrors.Newf(domainErrors.ErrInvalidState, "order is already %s", order.Status)
	}
	if !amount.Equal(order.Total) {
		return nil, domainErrors.New(domainErrors.ErrInvalidInput, "amount does not match order total")
	}
	if order.GatewayOrderRef != "" {
		return u.intent(order), nil
	}

	held, err := u.locker.Acquire(ctx, fmt.Sprintf("payment-intent:%d", orderID), intentLockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, domainErrors.New(domainErrors.ErrConflict, "payment intent is already being created")
		}
		return nil, fmt.Errorf("%w: %w", domainErrors.New(domainErrors.ErrUnavailable, "payment lock unavailable"), err)
	}
	defer func() {
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			u.logger.WarnContext(ctx, "release payment lock", slog.Int64("order_id", orderID), slog.Any("error", err))
		}
	}()

	// a concurrent holder may have finished between the first read and the lock
	if order, err = u.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	if order.GatewayOrderRef != "" {
		return u.intent(order), nil
	}

	ref, err := u.gateway.CreateOrder(ctx, model.GatewayOrderRequest{
		AmountMinor: order.Total.Mul(hundred).Round(0).IntPart(),
		Currency:    u.currency,
		Receipt:     fmt.Sprintf("rcpt_%d", order.ID),
	})
	if err != nil {
		return nil, err
	}

	stored, err := u.orders.SetGatewayRef(ctx, orderID, ref)
	if err != nil {
		return nil, err
	}
	if !stored {
		current, err := u.orders.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if current.GatewayOrderRef == "" {
			return nil, domainErrors.Newf(domainErrors.ErrInvalidState, "order is already %s", current.Status)
		}
		return u.intent(current), nil
	}

	order.GatewayOrderRef = ref
	u.logger.InfoContext(ctx, "payment intent created", slog.Int64("order_id", orderID), slog.String("gateway_order_ref", ref))
	return u.intent(order), nil
}

func (u *PaymentUseCase) customerOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.New(domainErrors.ErrNotFound, "order not found")
	}
	return order, nil
}

func (u *PaymentUseCase) intent(order *model.Order) *model.PaymentIntent {
	return &model.PaymentIntent{
		OrderID:         order.ID,
		GatewayOrderRef: order.GatewayOrderRef,
		Amount:          order.Total,
		Currency:        u.currency,
	}
}

// VerifyPayment authenticates a gateway callback and marks the order Paid.
// Replaying an accepted callback returns the paid order without change.
func (u *PaymentUseCase) VerifyPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Order, error) {
	order, result, err := u.verify(ctx, c)
	metrics.PaymentVerifications.WithLabelValues(result).Inc()
	if err != nil {
		u.logger.WarnContext(ctx, "payment verification rejected",
			slog.Int64("order_id", c.OrderID),
			slog.String("result", result),
		)
		return nil, err
	}
	return order, nil
}

func (u *PaymentUseCase) verify(ctx context.Context, c model.PaymentConfirmation) (*model.Order, string, error) {
	if c.GatewayOrderRef == "" || c.GatewayPaymentRef == "" || !u.signer.Verify(c.GatewayOrderRef, c.GatewayPaymentRef, c.Signature) {
		return nil, "bad_signature", domainErrors.New(domainErrors.ErrVerificationFailed, "payment signature is invalid")
	}

	order, err := u.orders.Get(ctx, c.OrderID)
	if err != nil {
		return nil, "error", err
	}
	if order.GatewayOrderRef != c.GatewayOrderRef {
		return nil, "ref_mismatch", domainErrors.New(domainErrors.ErrVerificationFailed, "payment does not belong to this order")
	}

	paid, applied, err := u.orders.MarkPaid(ctx, c.OrderID, c.GatewayOrderRef, c.GatewayPaymentRef)
	if err != nil {
		return nil, "error", err
	}
	if applied {
		metrics.OrderTransitions.WithLabelValues(string(paid.Status)).Inc()
		u.logger.InfoContext(ctx, "order paid", slog.Int64("order_id", paid.ID))
		u.notifier.Notify(newEvent(model.EventOrderPaid, paid, u.now()))
		return paid, "verified", nil
	}

	current, err := u.orders.Get(ctx, c.OrderID)
	if err != nil {
		return nil, "error", err
	}
	switch {
	case current.Status == model.OrderStatusPaid && current.GatewayPaymentRef == c.GatewayPaymentRef:
		return current, "replay", nil
	case current.Status == model.OrderStatusPaid:
		return nil, "conflict", domainErrors.New(domainErrors.ErrConflict, "order already paid with another payment")
	default:
		return nil, "invalid_state", domainErrors.New(domainErrors.ErrInvalidState, "order is not completed")
	}
}
