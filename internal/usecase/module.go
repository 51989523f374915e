package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/gateway"
	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/lock"
	"github.com/Lonewolf123457499/CarWashApp/internal/config"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
	"github.com/Lonewolf123457499/CarWashApp/internal/pkg/payment"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewPricingUseCase,
	NewCatalogUseCase,
	NewVehicleUseCase,
	NewRatingUseCase,
	NewAdminUseCase,
	newOrderUseCase,
	newPaymentUseCase,
)

type orderParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Tx       repository.Transactor
	Orders   repository.OrderRepository
	Vehicles repository.VehicleRepository
	Receipts repository.ReceiptRepository
	Users    repository.UserRepository
	Pricing  *PricingUseCase
	Notifier Notifier
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Tx, p.Orders, p.Vehicles, p.Receipts, p.Users, p.Pricing, p.Notifier, p.Config.PendingExpiry, p.Logger)
}

type paymentParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Orders   repository.OrderRepository
	Gateway  gateway.Client
	Locker   lock.Locker
	Notifier Notifier
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	signer := payment.NewSigner(p.Config.PaymentSecret)
	return NewPaymentUseCase(p.Orders, p.Gateway, p.Locker, signer, p.Config.PaymentCurrency, p.Notifier, p.Logger)
}
