package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/usecase"
)

// CarWashFacade exposes the use cases to the HTTP layer.
type CarWashFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	vehicles *usecase.VehicleUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	ratings  *usecase.RatingUseCase
	admin    *usecase.AdminUseCase
}

func NewCarWashFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	vehicles *usecase.VehicleUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	ratings *usecase.RatingUseCase,
	admin *usecase.AdminUseCase,
) *CarWashFacade {
	return &CarWashFacade{
		auth:     auth,
		catalog:  catalog,
		vehicles: vehicles,
		orders:   orders,
		payments: payments,
		ratings:  ratings,
		admin:    admin,
	}
}

func (f *CarWashFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *CarWashFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *CarWashFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *CarWashFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *CarWashFacade) Packages(ctx context.Context) ([]model.WashPackage, error) {
	return f.catalog.Packages(ctx)
}

func (f *CarWashFacade) Addons(ctx context.Context) ([]model.Addon, error) {
	return f.catalog.Addons(ctx)
}

func (f *CarWashFacade) CreatePackage(ctx context.Context, name, description string, price decimal.Decimal) (*model.WashPackage, error) {
	return f.catalog.CreatePackage(ctx, name, description, price)
}

func (f *CarWashFacade) CreateAddon(ctx context.Context, name string, price decimal.Decimal) (*model.Addon, error) {
	return f.catalog.CreateAddon(ctx, name, price)
}

func (f *CarWashFacade) AllPackages(ctx context.Context) ([]model.WashPackage, error) {
	return f.catalog.AllPackages(ctx)
}

func (f *CarWashFacade) AllAddons(ctx context.Context) ([]model.Addon, error) {
	return f.catalog.AllAddons(ctx)
}

func (f *CarWashFacade) UpdatePackage(ctx context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error) {
	return f.catalog.UpdatePackage(ctx, id, update)
}

func (f *CarWashFacade) UpdateAddon(ctx context.Context, id int64, update model.AddonUpdate) (*model.Addon, error) {
	return f.catalog.UpdateAddon(ctx, id, update)
}

func (f *CarWashFacade) DeactivatePackage(ctx context.Context, id int64) (*model.WashPackage, error) {
	return f.catalog.DeactivatePackage(ctx, id)
}

func (f *CarWashFacade) DeactivateAddon(ctx context.Context, id int64) (*model.Addon, error) {
	return f.catalog.DeactivateAddon(ctx, id)
}

func (f *CarWashFacade) Vehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error) {
	return f.vehicles.List(ctx, customerID)
}

func (f *CarWashFacade) AddVehicle(ctx context.Context, customerID int64, vehicleMake, vehicleModel, plate string) (*model.Vehicle, error) {
	return f.vehicles.Add(ctx, customerID, vehicleMake, vehicleModel, plate)
}

func (f *CarWashFacade) DeleteVehicle(ctx context.Context, customerID, vehicleID int64) error {
	return f.vehicles.Delete(ctx, customerID, vehicleID)
}

func (f *CarWashFacade) PlaceOrder(ctx context.Context, customerID, vehicleID, packageID int64, addonIDs []int64, scheduledAt time.Time) (*model.Order, error) {
	return f.orders.PlaceOrder(ctx, customerID, vehicleID, packageID, addonIDs, scheduledAt)
}

func (f *CarWashFacade) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *CarWashFacade) CancelOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, customerID, orderID)
}

func (f *CarWashFacade) Receipt(ctx context.Context, customerID, orderID int64) (*model.Receipt, error) {
	return f.orders.Receipt(ctx, customerID, orderID)
}

func (f *CarWashFacade) Order(ctx context.Context, identity model.Identity, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, identity, orderID)
}

func (f *CarWashFacade) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ListPending(ctx, limit)
}

func (f *CarWashFacade) WasherOrders(ctx context.Context, washerID int64) ([]model.Order, error) {
	return f.orders.ListByWasher(ctx, washerID)
}

func (f *CarWashFacade) AllOrders(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	return f.orders.ListAll(ctx, status, limit)
}

func (f *CarWashFacade) ClaimOrder(ctx context.Context, washerID, orderID int64) (*model.Order, *model.Receipt, error) {
	return f.orders.Claim(ctx, washerID, orderID)
}

func (f *CarWashFacade) StartWork(ctx context.Context, washerID, orderID int64) (*model.Order, error) {
	return f.orders.Start(ctx, washerID, orderID)
}

func (f *CarWashFacade) CompleteOrder(ctx context.Context, washerID, orderID int64, imageRef string) (*model.Order, error) {
	return f.orders.Complete(ctx, washerID, orderID, imageRef)
}

func (f *CarWashFacade) CreatePaymentIntent(ctx context.Context, customerID, orderID int64, amount decimal.Decimal) (*model.PaymentIntent, error) {
	return f.payments.CreatePaymentIntent(ctx, customerID, orderID, amount)
}

func (f *CarWashFacade) VerifyPayment(ctx context.Context, confirmation model.PaymentConfirmation) (*model.Order, error) {
	return f.payments.VerifyPayment(ctx, confirmation)
}

func (f *CarWashFacade) SubmitRating(ctx context.Context, customerID, orderID int64, stars int, comment string) (*model.Rating, error) {
	return f.ratings.Submit(ctx, customerID, orderID, stars, comment)
}

func (f *CarWashFacade) Ratings(ctx context.Context, identity model.Identity) ([]model.Rating, error) {
	return f.ratings.List(ctx, identity)
}

func (f *CarWashFacade) Accounts(ctx context.Context, role model.Role) ([]model.AccountSummary, error) {
	return f.admin.Accounts(ctx, role)
}

func (f *CarWashFacade) SetWasherActive(ctx context.Context, washerID int64, active bool) (*model.User, error) {
	return f.admin.SetWasherActive(ctx, washerID, active)
}

func (f *CarWashFacade) Stats(ctx context.Context) (*model.Stats, error) {
	return f.admin.Stats(ctx)
}
