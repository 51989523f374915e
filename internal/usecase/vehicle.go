package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
)

// VehicleUseCase manages the vehicles a customer books washes for.
type VehicleUseCase struct {
	vehicles repository.VehicleRepository
}

// NewVehicleUseCase constructs VehicleUseCase.
func NewVehicleUseCase(vehicles repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{vehicles: vehicles}
}

// Add registers a vehicle. The licence plate is stored upper-case.
func (u *VehicleUseCase) Add(ctx context.Context, customerID int64, vehicleMake, vehicleModel, plate string) (*model.Vehicle, error) {
	v := model.Vehicle{
		CustomerID:   customerID,
		Make:         strings.TrimSpace(vehicleMake),
		Model:        strings.TrimSpace(vehicleModel),
		LicensePlate: strings.ToUpper(strings.TrimSpace(plate)),
	}
	if v.Make == "" || v.Model == "" || v.LicensePlate == "" {
		return nil, domainErrors.New(domainErrors.ErrInvalidInput, "make, model and license plate are required")
	}
	return u.vehicles.Create(ctx, v)
}

func (u *VehicleUseCase) List(ctx context.Context, customerID int64) ([]model.Vehicle, error) {
	return u.vehicles.ListByCustomer(ctx, customerID)
}

// Delete removes a vehicle unless a washer is currently servicing it.
func (u *VehicleUseCase) Delete(ctx context.Context, customerID, vehicleID int64) error {
	if _, err := u.vehicles.GetForCustomer(ctx, vehicleID, customerID); err != nil {
		return err
	}
	active, err := u.vehicles.HasActiveOrders(ctx, vehicleID)
	if err != nil {
		return err
	}
	if active {
		return domainErrors.New(domainErrors.ErrInvalidState, "vehicle has orders in service")
	}
	return u.vehicles.Delete(ctx, vehicleID, customerID)
}
