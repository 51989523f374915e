package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
)

// VehicleHandler manages the caller's vehicles.
type VehicleHandler struct {
	facade VehicleFacade
}

func NewVehicleHandler(facade VehicleFacade) *VehicleHandler {
	return &VehicleHandler{facade: facade}
}

// List handles GET /api/customer/vehicles.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.facade.Vehicles(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, dto.NewVehicleResponse(v))
	}
	c.JSON(http.StatusOK, response)
}

// Add handles POST /api/customer/vehicles.
func (h *VehicleHandler) Add(c *gin.Context) {
	var req dto.VehicleRequest
	if !bindJSON(c, &req) {
		return
	}
	vehicle, err := h.facade.AddVehicle(c.Request.Context(), CurrentUserID(c), req.Make, req.Model, req.LicensePlate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewVehicleResponse(*vehicle))
}

// Delete handles DELETE /api/customer/vehicles/:id.
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteVehicle(c.Request.Context(), CurrentUserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
