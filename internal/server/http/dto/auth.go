package dto

import (
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// AuthRequest describes login/password payload. Role is only read on
// registration and defaults to customer.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ProfileResponse describes the authenticated account. The password hash is never exposed.
type ProfileResponse struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewProfileResponse(u model.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Login: u.Login, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

// TokenResponse carries the issued auth token.
type TokenResponse struct {
	Token string `json:"token"`
}
