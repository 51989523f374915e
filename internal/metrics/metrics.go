package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Claim results.
const (
	ClaimWon  = "won"
	ClaimLost = "lost"
)

// Notification results.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationDropped = "dropped"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carwash_orders_placed_total",
		Help: "Total number of orders placed",
	})
	OrderClaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carwash_order_claims_total",
		Help: "Claim attempts by outcome",
	}, []string{"result"})
	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carwash_order_transitions_total",
		Help: "Applied order status transitions by target status",
	}, []string{"to"})
	PaymentVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carwash_payment_verifications_total",
		Help: "Payment verification attempts by outcome",
	}, []string{"result"})
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carwash_notifications_total",
		Help: "Lifecycle notifications by delivery outcome",
	}, []string{"result"})
)
