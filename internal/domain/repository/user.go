package repository

import (
	"context"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// SetActive flips the active flag of the user with the given role.
	SetActive(ctx context.Context, id int64, role model.Role, active bool) (*model.User, error)
	// Summaries lists accounts with their activity; an empty role lists all.
	Summaries(ctx context.Context, role model.Role) ([]model.AccountSummary, error)
}
