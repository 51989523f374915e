package postgres

import (
	"context"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

func (r *receiptRepository) Create(ctx context.Context, receipt model.Receipt) (*model.Receipt, error) {
	const query = `INSERT INTO receipts (order_id, receipt_number, details, total, created_at)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.storage.db(ctx).QueryRow(ctx, query,
		receipt.OrderID, receipt.Number, receipt.Details, receipt.Total, receipt.CreatedAt,
	).Scan(&receipt.ID)
	if err != nil {
		return nil, classify(err, "receipt")
	}
	return &receipt, nil
}

// GetByOrder returns the receipt of an order owned by customerID.
func (r *receiptRepository) GetByOrder(ctx context.Context, orderID, customerID int64) (*model.Receipt, error) {
	const query = `SELECT r.id, r.order_id, r.receipt_number, r.details, r.total, r.created_at, o.status
                   FROM receipts r JOIN orders o ON o.id = r.order_id
                   WHERE r.order_id=$1 AND o.customer_id=$2`

	var rc model.Receipt
	err := r.storage.read(ctx, func(db querier) error {
		err := db.QueryRow(ctx, query, orderID, customerID).Scan(
			&rc.ID, &rc.OrderID, &rc.Number, &rc.Details, &rc.Total, &rc.CreatedAt, &rc.OrderStatus,
		)
		return classify(err, "receipt")
	})
	if err != nil {
		return nil, err
	}
	return &rc, nil
}
