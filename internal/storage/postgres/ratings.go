package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

const selectRatings = `SELECT id, order_id, customer_id, washer_id, stars, comment, created_at FROM ratings`

func scanRating(row rowScanner) (model.Rating, error) {
	var rt model.Rating
	err := row.Scan(&rt.ID, &rt.OrderID, &rt.CustomerID, &rt.WasherID, &rt.Stars, &rt.Comment, &rt.CreatedAt)
	return rt, err
}

// Create inserts the rating in a single statement guarded by the order state;
// the unique order_id constraint rejects a second rating.
func (r *ratingRepository) Create(ctx context.Context, orderID, customerID int64, stars int, comment string) (*model.Rating, error) {
	const query = `INSERT INTO ratings (order_id, customer_id, washer_id, stars, comment)
                   SELECT o.id, o.customer_id, o.washer_id, $3::int, $4::text FROM orders o
                   WHERE o.id=$1 AND o.customer_id=$2 AND o.status IN ($5, $6) AND o.washer_id IS NOT NULL
                   RETURNING id, order_id, customer_id, washer_id, stars, comment, created_at`

	rating, err := scanRating(r.storage.db(ctx).QueryRow(ctx, query,
		orderID, customerID, stars, comment, model.OrderStatusCompleted, model.OrderStatusPaid,
	))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, domainErrors.New(domainErrors.ErrNotFound, "order not found or not ready for rating")
	case err != nil:
		if err = classify(err, "rating"); errors.Is(err, domainErrors.ErrConflict) {
			return nil, domainErrors.New(domainErrors.ErrConflict, "order already rated")
		}
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Rating, error) {
	return r.list(ctx, selectRatings+` WHERE customer_id=$1 ORDER BY created_at DESC, id DESC`, customerID)
}

func (r *ratingRepository) ListByWasher(ctx context.Context, washerID int64) ([]model.Rating, error) {
	return r.list(ctx, selectRatings+` WHERE washer_id=$1 ORDER BY created_at DESC, id DESC`, washerID)
}

func (r *ratingRepository) list(ctx context.Context, query string, userID int64) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.storage.read(ctx, func(db querier) error {
		rows, err := db.Query(ctx, query, userID)
		if err != nil {
			return classify(err, "rating")
		}
		ratings, err = collect(rows, scanRating)
		return classify(err, "rating")
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
