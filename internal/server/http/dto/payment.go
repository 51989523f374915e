package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

type PaymentIntentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type PaymentIntentResponse struct {
	OrderID         int64  `json:"order_id"`
	GatewayOrderRef string `json:"gateway_order_ref"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
}

// VerifyPaymentRequest is the gateway checkout callback.
type VerifyPaymentRequest struct {
	OrderID           int64  `json:"order_id"`
	GatewayOrderRef   string `json:"gateway_order_ref"`
	GatewayPaymentRef string `json:"gateway_payment_ref"`
	Signature         string `json:"signature"`
}

func NewPaymentIntentResponse(p model.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		OrderID:         p.OrderID,
		GatewayOrderRef: p.GatewayOrderRef,
		Amount:          p.Amount.StringFixed(2),
		Currency:        p.Currency,
	}
}

func (r VerifyPaymentRequest) Confirmation() model.PaymentConfirmation {
	return model.PaymentConfirmation{
		OrderID:           r.OrderID,
		GatewayOrderRef:   r.GatewayOrderRef,
		GatewayPaymentRef: r.GatewayPaymentRef,
		Signature:         r.Signature,
	}
}
