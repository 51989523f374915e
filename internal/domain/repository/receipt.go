package repository

import (
	"context"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// ReceiptRepository stores receipts issued at claim time.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt model.Receipt) (*model.Receipt, error)
	GetByOrder(ctx context.Context, orderID, customerID int64) (*model.Receipt, error)
}
