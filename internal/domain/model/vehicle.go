package model

import "time"

// Vehicle belongs to a single customer.
type Vehicle struct {
	ID           int64
	CustomerID   int64
	Make         string
	Model        string
	LicensePlate string
	CreatedAt    time.Time
}
