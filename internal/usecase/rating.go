package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
)

// MaxCommentLength bounds rating comments, in characters.
const MaxCommentLength = 1000

// RatingUseCase accepts the single review of a finished order.
type RatingUseCase struct {
	ratings repository.RatingRepository
}

// NewRatingUseCase constructs RatingUseCase.
func NewRatingUseCase(ratings repository.RatingRepository) *RatingUseCase {
	return &RatingUseCase{ratings: ratings}
}

// Submit stores a rating for a Completed or Paid order of the customer.
// Stars are clamped to the accepted range.
func (u *RatingUseCase) Submit(ctx context.Context, customerID, orderID int64, stars int, comment string) (*model.Rating, error) {
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, domainErrors.Newf(domainErrors.ErrInvalidInput, "comment must be at most %d characters", MaxCommentLength)
	}
	return u.ratings.Create(ctx, orderID, customerID, model.ClampStars(stars), comment)
}

// List returns the ratings written by a customer or received by a washer.
func (u *RatingUseCase) List(ctx context.Context, identity model.Identity) ([]model.Rating, error) {
	switch identity.Role {
	case model.RoleCustomer:
		return u.ratings.ListByCustomer(ctx, identity.UserID)
	case model.RoleWasher:
		return u.ratings.ListByWasher(ctx, identity.UserID)
	default:
		return nil, domainErrors.ErrForbidden
	}
}
