package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
)

// PaymentHandler opens checkouts and accepts gateway callbacks.
type PaymentHandler struct {
	facade PaymentFacade
}

func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateIntent handles POST /api/customer/orders/:id/payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}
	intent, err := h.facade.CreatePaymentIntent(c.Request.Context(), CurrentUserID(c), id, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentIntentResponse(*intent))
}

// Verify handles POST /api/payments/verify. The request is authenticated by
// its signature rather than by a session.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.facade.VerifyPayment(c.Request.Context(), req.Confirmation())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}
