package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
	pkgAuth "github.com/Lonewolf123457499/CarWashApp/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a customer or washer account and returns auth token.
// Admin accounts cannot be self-registered.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if utf8.RuneCountInString(password) < pkgAuth.MinPasswordLength {
		return nil, "", domainErrors.Newf(domainErrors.ErrInvalidInput, "password must be at least %d characters", pkgAuth.MinPasswordLength)
	}
	if role == "" {
		role = model.RoleCustomer
	}
	if role != model.RoleCustomer && role != model.RoleWasher {
		return nil, "", domainErrors.New(domainErrors.ErrInvalidInput, "role must be customer or washer")
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, hash, role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrConflict) {
			return nil, "", domainErrors.New(domainErrors.ErrConflict, "login already taken")
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(model.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if !usr.Active {
		return nil, "", domainErrors.New(domainErrors.ErrForbidden, "account is deactivated")
	}

	token, err := u.tokens.IssueToken(model.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the caller identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Profile loads the account behind an authenticated identity. A token for a
// deleted account yields ErrNotFound.
func (u *AuthUseCase) Profile(ctx context.Context, userID int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.New(domainErrors.ErrNotFound, "account not found")
		}
		return nil, err
	}
	return usr, nil
}
