package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/middleware"
)

// AdminHandler serves account management and the dashboard.
type AdminHandler struct {
	facade AdminFacade
}

func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Accounts handles GET /api/admin/users?role=R.
func (h *AdminHandler) Accounts(c *gin.Context) {
	accounts, err := h.facade.Accounts(c.Request.Context(), model.Role(c.Query("role")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAccountListResponse(accounts))
}

// SetWasherStatus handles PATCH /api/admin/washers/:id/status.
func (h *AdminHandler) SetWasherStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.WasherStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Active == nil {
		middleware.Abort(c, http.StatusBadRequest, middleware.CodeInvalidInput, "active is required")
		return
	}
	washer, err := h.facade.SetWasherActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAccountResponse(model.AccountSummary{User: *washer}))
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(*stats))
}
