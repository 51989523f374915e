package repository

import (
	"context"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// RatingRepository stores the single rating of each finished order.
type RatingRepository interface {
	// Create inserts the rating only if the order belongs to customerID, is
	// Completed or Paid and has a washer. It returns ErrNotFound otherwise and
	// ErrConflict when the order already has a rating.
	Create(ctx context.Context, orderID, customerID int64, stars int, comment string) (*model.Rating, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Rating, error)
	ListByWasher(ctx context.Context, washerID int64) ([]model.Rating, error)
}
