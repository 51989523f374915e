package postgres

import (
	"context"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

const selectVehicles = `SELECT id, customer_id, make, model, license_plate, created_at FROM vehicles`

func scanVehicle(row rowScanner) (model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(&v.ID, &v.CustomerID, &v.Make, &v.Model, &v.LicensePlate, &v.CreatedAt)
	return v, err
}

func (r *vehicleRepository) Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	const query = `INSERT INTO vehicles (customer_id, make, model, license_plate) VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`
	err := r.storage.db(ctx).QueryRow(ctx, query, v.CustomerID, v.Make, v.Model, v.LicensePlate).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return nil, classify(err, "vehicle")
	}
	return &v, nil
}

// GetForCustomer returns the vehicle only when customerID owns it.
func (r *vehicleRepository) GetForCustomer(ctx context.Context, id, customerID int64) (*model.Vehicle, error) {
	const query = selectVehicles + ` WHERE id=$1 AND customer_id=$2 AND deleted_at IS NULL`
	var v model.Vehicle
	err := r.storage.read(ctx, func(db querier) error {
		var err error
		v, err = scanVehicle(db.QueryRow(ctx, query, id, customerID))
		return classify(err, "vehicle")
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Vehicle, error) {
	const query = selectVehicles + ` WHERE customer_id=$1 AND deleted_at IS NULL ORDER BY created_at DESC, id DESC`
	var vehicles []model.Vehicle
	err := r.storage.read(ctx, func(db querier) error {
		rows, err := db.Query(ctx, query, customerID)
		if err != nil {
			return classify(err, "vehicle")
		}
		vehicles, err = collect(rows, scanVehicle)
		return classify(err, "vehicle")
	})
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// HasActiveOrders reports whether a washer currently holds an order for the vehicle.
func (r *vehicleRepository) HasActiveOrders(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM orders WHERE vehicle_id=$1 AND status IN ($2, $3))`
	var active bool
	err := r.storage.read(ctx, func(db querier) error {
		err := db.QueryRow(ctx, query, id, model.OrderStatusAssigned, model.OrderStatusInProgress).Scan(&active)
		return classify(err, "vehicle")
	})
	return active, err
}

// Delete hides the vehicle. Past orders keep referencing it.
func (r *vehicleRepository) Delete(ctx context.Context, id, customerID int64) error {
	const query = `UPDATE vehicles SET deleted_at=NOW() WHERE id=$1 AND customer_id=$2 AND deleted_at IS NULL`
	tag, err := r.storage.db(ctx).Exec(ctx, query, id, customerID)
	if err != nil {
		return classify(err, "vehicle")
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.New(domainErrors.ErrNotFound, "vehicle not found")
	}
	return nil
}
