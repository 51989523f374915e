package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/middleware"
)

// OrderHandler manages order-related endpoints for customers and washers.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/customer/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), req.VehicleID, req.PackageID, req.AddonIDs, req.ScheduledAt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(*order))
}

// ListCustomer handles GET /api/customer/orders.
func (h *OrderHandler) ListCustomer(c *gin.Context) {
	orders, err := h.facade.CustomerOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// Cancel handles POST /api/customer/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// Receipt handles GET /api/customer/orders/:id/receipt.
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.facade.Receipt(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReceiptResponse(*receipt))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// ListPending handles GET /api/washer/orders/pending?limit=N.
func (h *OrderHandler) ListPending(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	orders, err := h.facade.PendingOrders(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// ListAll handles GET /api/admin/orders?status=S&limit=N.
func (h *OrderHandler) ListAll(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	orders, err := h.facade.AllOrders(c.Request.Context(), model.OrderStatus(c.Query("status")), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// ListWasher handles GET /api/washer/orders.
func (h *OrderHandler) ListWasher(c *gin.Context) {
	orders, err := h.facade.WasherOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// Claim handles POST /api/washer/orders/:id/claim.
func (h *OrderHandler) Claim(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, receipt, err := h.facade.ClaimOrder(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClaimResponse{
		Order:   dto.NewOrderResponse(*order),
		Receipt: dto.NewReceiptResponse(*receipt),
	})
}

// Start handles POST /api/washer/orders/:id/start.
func (h *OrderHandler) Start(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.StartWork(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// Complete handles POST /api/washer/orders/:id/complete. The body is
// optional.
func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.Abort(c, http.StatusBadRequest, middleware.CodeInvalidInput, "malformed request body")
		return
	}
	order, err := h.facade.CompleteOrder(c.Request.Context(), CurrentUserID(c), id, req.ImageRef)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}
