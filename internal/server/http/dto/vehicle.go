package dto

import (
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

type VehicleRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
}

type VehicleResponse struct {
	ID           int64     `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	LicensePlate string    `json:"license_plate"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewVehicleResponse(v model.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Make:         v.Make,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		CreatedAt:    v.CreatedAt,
	}
}
