package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
)

type RatingHandler struct {
	facade RatingFacade
}

func NewRatingHandler(facade RatingFacade) *RatingHandler {
	return &RatingHandler{facade: facade}
}

// Submit handles POST /api/customer/ratings.
func (h *RatingHandler) Submit(c *gin.Context) {
	var req dto.RatingRequest
	if !bindJSON(c, &req) {
		return
	}
	rating, err := h.facade.SubmitRating(c.Request.Context(), CurrentUserID(c), req.OrderID, req.Stars, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRatingResponse(*rating))
}

// List handles GET /api/customer/ratings and GET /api/washer/ratings.
func (h *RatingHandler) List(c *gin.Context) {
	ratings, err := h.facade.Ratings(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		response = append(response, dto.NewRatingResponse(r))
	}
	c.JSON(http.StatusOK, response)
}
