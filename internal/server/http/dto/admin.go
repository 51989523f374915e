package dto

import (
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// WasherStatusRequest switches a washer account on or off.
type WasherStatusRequest struct {
	Active *bool `json:"active"`
}

// AccountResponse is an account with its activity. Password hashes never
// leave the server.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	Vehicles  int       `json:"vehicles"`
	Orders    int       `json:"orders"`
	Completed int       `json:"completed_orders"`
	Spent     string    `json:"total_spent"`
}

type OrderStatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Revenue  string         `json:"revenue"`
}

type StatsResponse struct {
	Customers      int                `json:"customers"`
	Washers        int                `json:"washers"`
	ActiveWashers  int                `json:"active_washers"`
	Packages       int                `json:"packages"`
	ActivePackages int                `json:"active_packages"`
	Addons         int                `json:"addons"`
	ActiveAddons   int                `json:"active_addons"`
	Orders         OrderStatsResponse `json:"orders"`
}

func NewAccountResponse(s model.AccountSummary) AccountResponse {
	return AccountResponse{
		ID:        s.User.ID,
		Login:     s.User.Login,
		Role:      string(s.User.Role),
		Active:    s.User.Active,
		CreatedAt: s.User.CreatedAt,
		Vehicles:  s.Vehicles,
		Orders:    s.Orders,
		Completed: s.Completed,
		Spent:     s.Spent.StringFixed(2),
	}
}

func NewAccountListResponse(accounts []model.AccountSummary) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewAccountResponse(a))
	}
	return out
}

// NewStatsResponse reports every status, including those with no orders.
func NewStatsResponse(s model.Stats) StatsResponse {
	byStatus := make(map[string]int, 6)
	for _, status := range []model.OrderStatus{
		model.OrderStatusPending, model.OrderStatusAssigned, model.OrderStatusInProgress,
		model.OrderStatusCompleted, model.OrderStatusPaid, model.OrderStatusCancelled,
	} {
		byStatus[string(status)] = s.Orders.ByStatus[status]
	}
	return StatsResponse{
		Customers:      s.Customers,
		Washers:        s.Washers,
		ActiveWashers:  s.ActiveWashers,
		Packages:       s.Packages,
		ActivePackages: s.ActivePackages,
		Addons:         s.Addons,
		ActiveAddons:   s.ActiveAddons,
		Orders: OrderStatsResponse{
			Total:    s.Orders.Total,
			ByStatus: byStatus,
			Revenue:  s.Orders.Revenue.StringFixed(2),
		},
	}
}
