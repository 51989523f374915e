package repository

import (
	"context"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// VehicleRepository stores customer vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle model.Vehicle) (*model.Vehicle, error)
	GetForCustomer(ctx context.Context, id, customerID int64) (*model.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Vehicle, error)
	HasActiveOrders(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id, customerID int64) error
}
