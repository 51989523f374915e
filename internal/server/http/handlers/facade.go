package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Identity, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// CatalogFacade exposes wash packages and addons.
type CatalogFacade interface {
	Packages(ctx context.Context) ([]model.WashPackage, error)
	Addons(ctx context.Context) ([]model.Addon, error)
	CreatePackage(ctx context.Context, name, description string, price decimal.Decimal) (*model.WashPackage, error)
	CreateAddon(ctx context.Context, name string, price decimal.Decimal) (*model.Addon, error)
	AllPackages(ctx context.Context) ([]model.WashPackage, error)
	AllAddons(ctx context.Context) ([]model.Addon, error)
	UpdatePackage(ctx context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error)
	UpdateAddon(ctx context.Context, id int64, update model.AddonUpdate) (*model.Addon, error)
	DeactivatePackage(ctx context.Context, id int64) (*model.WashPackage, error)
	DeactivateAddon(ctx context.Context, id int64) (*model.Addon, error)
}

// VehicleFacade manages customer vehicles.
type VehicleFacade interface {
	Vehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error)
	AddVehicle(ctx context.Context, customerID int64, vehicleMake, vehicleModel, plate string) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, customerID, vehicleID int64) error
}

// OrderFacade encapsulates the order lifecycle exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, customerID, vehicleID, packageID int64, addonIDs []int64, scheduledAt time.Time) (*model.Order, error)
	CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error)
	Receipt(ctx context.Context, customerID, orderID int64) (*model.Receipt, error)
	Order(ctx context.Context, identity model.Identity, orderID int64) (*model.Order, error)
	PendingOrders(ctx context.Context, limit int) ([]model.Order, error)
	WasherOrders(ctx context.Context, washerID int64) ([]model.Order, error)
	ClaimOrder(ctx context.Context, washerID, orderID int64) (*model.Order, *model.Receipt, error)
	StartWork(ctx context.Context, washerID, orderID int64) (*model.Order, error)
	CompleteOrder(ctx context.Context, washerID, orderID int64, imageRef string) (*model.Order, error)
	AllOrders(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
}

// PaymentFacade opens and settles gateway payments.
type PaymentFacade interface {
	CreatePaymentIntent(ctx context.Context, customerID, orderID int64, amount decimal.Decimal) (*model.PaymentIntent, error)
	VerifyPayment(ctx context.Context, confirmation model.PaymentConfirmation) (*model.Order, error)
}

// RatingFacade accepts and lists ratings.
type RatingFacade interface {
	SubmitRating(ctx context.Context, customerID, orderID int64, stars int, comment string) (*model.Rating, error)
	Ratings(ctx context.Context, identity model.Identity) ([]model.Rating, error)
}

// AdminFacade serves account management and reporting.
type AdminFacade interface {
	Accounts(ctx context.Context, role model.Role) ([]model.AccountSummary, error)
	SetWasherActive(ctx context.Context, washerID int64, active bool) (*model.User, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

// CarWashFacade aggregates the full set of operations used across handlers.
type CarWashFacade interface {
	AuthFacade
	CatalogFacade
	VehicleFacade
	OrderFacade
	PaymentFacade
	RatingFacade
	AdminFacade
}
