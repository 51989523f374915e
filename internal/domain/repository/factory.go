package repository

import "context"

// Transactor runs fn inside a single storage transaction carried by ctx.
// Repository calls made with the derived context join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Factory describes access to different domain repositories.
type Factory interface {
	Transactor
	Users() UserRepository
	Orders() OrderRepository
	Catalog() CatalogRepository
	Vehicles() VehicleRepository
	Receipts() ReceiptRepository
	Ratings() RatingRepository
}
