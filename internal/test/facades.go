package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// CatalogFacadeStub serves a fixed catalog unless overridden.
type CatalogFacadeStub struct {
	PackagesFn      func(context.Context) ([]model.WashPackage, error)
	AddonsFn        func(context.Context) ([]model.Addon, error)
	CreatePackageFn func(context.Context, string, string, decimal.Decimal) (*model.WashPackage, error)
	CreateAddonFn   func(context.Context, string, decimal.Decimal) (*model.Addon, error)
	UpdatePackageFn func(context.Context, int64, model.PackageUpdate) (*model.WashPackage, error)
	UpdateAddonFn   func(context.Context, int64, model.AddonUpdate) (*model.Addon, error)
}

// Packages returns a single active package by default.
func (s CatalogFacadeStub) Packages(ctx context.Context) ([]model.WashPackage, error) {
	if s.PackagesFn != nil {
		return s.PackagesFn(ctx)
	}
	return []model.WashPackage{{ID: 1, Name: "Basic", Price: decimal.RequireFromString("15"), Active: true}}, nil
}

// Addons returns a single addon by default.
func (s CatalogFacadeStub) Addons(ctx context.Context) ([]model.Addon, error) {
	if s.AddonsFn != nil {
		return s.AddonsFn(ctx)
	}
	return []model.Addon{{ID: 2, Name: "Wax", Price: decimal.RequireFromString("10"), Active: true}}, nil
}

// CreatePackage echoes the request as a stored package.
func (s CatalogFacadeStub) CreatePackage(ctx context.Context, name, description string, price decimal.Decimal) (*model.WashPackage, error) {
	if s.CreatePackageFn != nil {
		return s.CreatePackageFn(ctx, name, description, price)
	}
	return &model.WashPackage{ID: 1, Name: name, Description: description, Price: price, Active: true}, nil
}

// CreateAddon echoes the request as a stored addon.
func (s CatalogFacadeStub) CreateAddon(ctx context.Context, name string, price decimal.Decimal) (*model.Addon, error) {
	if s.CreateAddonFn != nil {
		return s.CreateAddonFn(ctx, name, price)
	}
	return &model.Addon{ID: 1, Name: name, Price: price, Active: true}, nil
}

// AllPackages adds a deactivated package to the default catalog.
func (s CatalogFacadeStub) AllPackages(ctx context.Context) ([]model.WashPackage, error) {
	packages, err := s.Packages(ctx)
	if err != nil {
		return nil, err
	}
	return append(packages, model.WashPackage{ID: 5, Name: "Retired", Price: decimal.RequireFromString("9")}), nil
}

func (s CatalogFacadeStub) AllAddons(ctx context.Context) ([]model.Addon, error) {
	return s.Addons(ctx)
}

// UpdatePackage applies update to a stored "Basic" package by default.
func (s CatalogFacadeStub) UpdatePackage(ctx context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error) {
	if s.UpdatePackageFn != nil {
		return s.UpdatePackageFn(ctx, id, update)
	}
	pkg := model.WashPackage{ID: id, Name: "Basic", Price: decimal.RequireFromString("15"), Active: true}
	if update.Name != nil {
		pkg.Name = *update.Name
	}
	if update.Description != nil {
		pkg.Description = *update.Description
	}
	if update.Price != nil {
		pkg.Price = *update.Price
	}
	if update.Active != nil {
		pkg.Active = *update.Active
	}
	return &pkg, nil
}

func (s CatalogFacadeStub) UpdateAddon(ctx context.Context, id int64, update model.AddonUpdate) (*model.Addon, error) {
	if s.UpdateAddonFn != nil {
		return s.UpdateAddonFn(ctx, id, update)
	}
	addon := model.Addon{ID: id, Name: "Wax", Price: decimal.RequireFromString("10"), Active: true}
	if update.Name != nil {
		addon.Name = *update.Name
	}
	if update.Price != nil {
		addon.Price = *update.Price
	}
	if update.Active != nil {
		addon.Active = *update.Active
	}
	return &addon, nil
}

// DeactivatePackage goes through UpdatePackage so overrides see it.
func (s CatalogFacadeStub) DeactivatePackage(ctx context.Context, id int64) (*model.WashPackage, error) {
	inactive := false
	return s.UpdatePackage(ctx, id, model.PackageUpdate{Active: &inactive})
}

func (s CatalogFacadeStub) DeactivateAddon(ctx context.Context, id int64) (*model.Addon, error) {
	inactive := false
	return s.UpdateAddon(ctx, id, model.AddonUpdate{Active: &inactive})
}

// VehicleFacadeStub simulates vehicle management.
type VehicleFacadeStub struct {
	VehiclesFn func(context.Context, int64) ([]model.Vehicle, error)
	AddFn      func(context.Context, int64, string, string, string) (*model.Vehicle, error)
	DeleteFn   func(context.Context, int64, int64) error
}

func (s VehicleFacadeStub) Vehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error) {
	if s.VehiclesFn != nil {
		return s.VehiclesFn(ctx, customerID)
	}
	return nil, nil
}

func (s VehicleFacadeStub) AddVehicle(ctx context.Context, customerID int64, vehicleMake, vehicleModel, plate string) (*model.Vehicle, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, customerID, vehicleMake, vehicleModel, plate)
	}
	return &model.Vehicle{ID: 1, CustomerID: customerID, Make: vehicleMake, Model: vehicleModel, LicensePlate: plate}, nil
}

func (s VehicleFacadeStub) DeleteVehicle(ctx context.Context, customerID, vehicleID int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, customerID, vehicleID)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn    func(context.Context, int64, int64, int64, []int64, time.Time) (*model.Order, error)
	ListFn     func(context.Context, int64) ([]model.Order, error)
	CancelFn   func(context.Context, int64, int64) (*model.Order, error)
	ReceiptFn  func(context.Context, int64, int64) (*model.Receipt, error)
	GetFn      func(context.Context, model.Identity, int64) (*model.Order, error)
	PendingFn  func(context.Context, int) ([]model.Order, error)
	WasherFn   func(context.Context, int64) ([]model.Order, error)
	ClaimFn    func(context.Context, int64, int64) (*model.Order, *model.Receipt, error)
	StartFn    func(context.Context, int64, int64) (*model.Order, error)
	CompleteFn func(context.Context, int64, int64, string) (*model.Order, error)
	AllFn      func(context.Context, model.OrderStatus, int) ([]model.Order, error)
}

// PlaceOrder returns a pending order built from the request by default.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, customerID, vehicleID, packageID int64, addonIDs []int64, scheduledAt time.Time) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, customerID, vehicleID, packageID, addonIDs, scheduledAt)
	}
	return &model.Order{
		ID: 1, CustomerID: customerID, VehicleID: vehicleID, PackageID: packageID, AddonIDs: addonIDs,
		Status: model.OrderStatusPending, ScheduledAt: scheduledAt, Total: decimal.RequireFromString("25"),
	}, nil
}

func (s OrderFacadeStub) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, customerID)
	}
	return nil, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, customerID, orderID)
	}
	return &model.Order{ID: orderID, CustomerID: customerID, Status: model.OrderStatusCancelled}, nil
}

func (s OrderFacadeStub) Receipt(ctx context.Context, customerID, orderID int64) (*model.Receipt, error) {
	if s.ReceiptFn != nil {
		return s.ReceiptFn(ctx, customerID, orderID)
	}
	return &model.Receipt{ID: 1, OrderID: orderID, Number: "GCW-20250726-000001", Total: decimal.RequireFromString("25")}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, identity model.Identity, orderID int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, identity, orderID)
	}
	return &model.Order{ID: orderID, CustomerID: identity.UserID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	return nil, nil
}

func (s OrderFacadeStub) WasherOrders(ctx context.Context, washerID int64) ([]model.Order, error) {
	if s.WasherFn != nil {
		return s.WasherFn(ctx, washerID)
	}
	return nil, nil
}

// ClaimOrder assigns the order to washerID by default.
func (s OrderFacadeStub) ClaimOrder(ctx context.Context, washerID, orderID int64) (*model.Order, *model.Receipt, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, washerID, orderID)
	}
	order := &model.Order{ID: orderID, WasherID: &washerID, Status: model.OrderStatusAssigned}
	return order, &model.Receipt{ID: 1, OrderID: orderID, Number: "GCW-20250726-000001", OrderStatus: model.OrderStatusAssigned}, nil
}

func (s OrderFacadeStub) StartWork(ctx context.Context, washerID, orderID int64) (*model.Order, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, washerID, orderID)
	}
	return &model.Order{ID: orderID, WasherID: &washerID, Status: model.OrderStatusInProgress}, nil
}

func (s OrderFacadeStub) CompleteOrder(ctx context.Context, washerID, orderID int64, imageRef string) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, washerID, orderID, imageRef)
	}
	return &model.Order{ID: orderID, WasherID: &washerID, Status: model.OrderStatusCompleted, ImageRef: imageRef}, nil
}

func (s OrderFacadeStub) AllOrders(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx, status, limit)
	}
	return nil, nil
}

// PaymentFacadeStub simulates the gateway checkout flow.
type PaymentFacadeStub struct {
	IntentFn func(context.Context, int64, int64, decimal.Decimal) (*model.PaymentIntent, error)
	VerifyFn func(context.Context, model.PaymentConfirmation) (*model.Order, error)
}

func (s PaymentFacadeStub) CreatePaymentIntent(ctx context.Context, customerID, orderID int64, amount decimal.Decimal) (*model.PaymentIntent, error) {
	if s.IntentFn != nil {
		return s.IntentFn(ctx, customerID, orderID, amount)
	}
	return &model.PaymentIntent{OrderID: orderID, GatewayOrderRef: "order_1", Amount: amount, Currency: "INR"}, nil
}

func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, confirmation model.PaymentConfirmation) (*model.Order, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, confirmation)
	}
	return &model.Order{ID: confirmation.OrderID, Status: model.OrderStatusPaid}, nil
}

// RatingFacadeStub simulates rating submission.
type RatingFacadeStub struct {
	SubmitFn func(context.Context, int64, int64, int, string) (*model.Rating, error)
	ListFn   func(context.Context, model.Identity) ([]model.Rating, error)
}

func (s RatingFacadeStub) SubmitRating(ctx context.Context, customerID, orderID int64, stars int, comment string) (*model.Rating, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, customerID, orderID, stars, comment)
	}
	return &model.Rating{ID: 1, OrderID: orderID, CustomerID: customerID, Stars: model.ClampStars(stars), Comment: comment}, nil
}

func (s RatingFacadeStub) Ratings(ctx context.Context, identity model.Identity) ([]model.Rating, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, identity)
	}
	return nil, nil
}

// AdminFacadeStub simulates account management and reporting.
type AdminFacadeStub struct {
	AccountsFn  func(context.Context, model.Role) ([]model.AccountSummary, error)
	SetActiveFn func(context.Context, int64, bool) (*model.User, error)
	StatsFn     func(context.Context) (*model.Stats, error)
}

func (s AdminFacadeStub) Accounts(ctx context.Context, role model.Role) ([]model.AccountSummary, error) {
	if s.AccountsFn != nil {
		return s.AccountsFn(ctx, role)
	}
	return nil, nil
}

// SetWasherActive echoes the requested state by default.
func (s AdminFacadeStub) SetWasherActive(ctx context.Context, washerID int64, active bool) (*model.User, error) {
	if s.SetActiveFn != nil {
		return s.SetActiveFn(ctx, washerID, active)
	}
	return &model.User{ID: washerID, Login: "washer", Role: model.RoleWasher, Active: active}, nil
}

func (s AdminFacadeStub) Stats(ctx context.Context) (*model.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.Stats{Orders: model.OrderStats{ByStatus: map[model.OrderStatus]int{}, Revenue: decimal.Zero}}, nil
}

// CarWashFacadeStub aggregates per-area stubs into the full handler facade.
type CarWashFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	VehicleFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	RatingFacadeStub
	AdminFacadeStub
}
