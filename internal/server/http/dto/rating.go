package dto

import (
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

type RatingRequest struct {
	OrderID int64  `json:"order_id"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

type RatingResponse struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	WasherID   int64     `json:"washer_id"`
	Stars      int       `json:"stars"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewRatingResponse(r model.Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		CustomerID: r.CustomerID,
		WasherID:   r.WasherID,
		Stars:      r.Stars,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
