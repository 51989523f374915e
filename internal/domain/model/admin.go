package model

import "github.com/shopspring/decimal"

// AccountSummary is a user together with the activity admins review.
// Orders counts orders placed by a customer or held by a washer; Completed
// counts those among them that reached Completed or Paid.
type AccountSummary struct {
	User      User
	Vehicles  int
	Orders    int
	Completed int
	Spent     decimal.Decimal
}

// OrderStats aggregates orders by status. Revenue sums the totals of Paid
// orders.
type OrderStats struct {
	Total    int
	ByStatus map[OrderStatus]int
	Revenue  decimal.Decimal
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	Customers      int
	Washers        int
	ActiveWashers  int
	Packages       int
	ActivePackages int
	Addons         int
	ActiveAddons   int
	Orders         OrderStats
}
