package model

import "github.com/shopspring/decimal"

// PaymentIntent is the gateway-side order handle created for checkout.
type PaymentIntent struct {
	OrderID         int64
	GatewayOrderRef string
	Amount          decimal.Decimal
	Currency        string
}

// GatewayOrderRequest is sent to the payment gateway to open an intent.
type GatewayOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
}

// PaymentConfirmation is the verified gateway callback.
type PaymentConfirmation struct {
	OrderID           int64
	GatewayOrderRef   string
	GatewayPaymentRef string
	Signature         string
}
