package model

import "time"

const (
	MinStars = 0
	MaxStars = 5
)

// Rating is the single, immutable review of a finished order.
type Rating struct {
	ID         int64
	OrderID    int64
	CustomerID int64
	WasherID   int64
	Stars      int
	Comment    string
	CreatedAt  time.Time
}

// ClampStars bounds a star count to the accepted range.
func ClampStars(stars int) int {
	if stars < MinStars {
		return MinStars
	}
	if stars > MaxStars {
		return MaxStars
	}
	return stars
}
