package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
)

// AdminUseCase serves the account and reporting side of administration.
// Catalog and order maintenance stay with their own use cases.
type AdminUseCase struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	orders  repository.OrderRepository
	logger  *slog.Logger
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	orders repository.OrderRepository,
	logger *slog.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		users:   users,
		catalog: catalog,
		orders:  orders,
		logger:  logger.With(slog.String("component", "admin")),
	}
}

// Accounts lists accounts of one role, or all of them for an empty role.
func (u *AdminUseCase) Accounts(ctx context.Context, role model.Role) ([]model.AccountSummary, error) {
	if role != "" && !role.Valid() {
		return nil, domainErrors.Newf(domainErrors.ErrInvalidInput, "unknown role %q", role)
	}
	return u.users.Summaries(ctx, role)
}

// SetWasherActive enables or disables a washer account. A disabled washer
// cannot log in or claim new orders.
func (u *AdminUseCase) SetWasherActive(ctx context.Context, washerID int64, active bool) (*model.User, error) {
	washer, err := u.users.SetActive(ctx, washerID, model.RoleWasher, active)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.New(domainErrors.ErrNotFound, "washer not found")
		}
		return nil, err
	}
	u.logger.InfoContext(ctx, "washer status changed",
		slog.Int64("washer_id", washerID),
		slog.Bool("active", active),
	)
	return washer, nil
}

// Stats assembles the dashboard counters.
func (u *AdminUseCase) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats

	accounts, err := u.users.Summaries(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		switch a.User.Role {
		case model.RoleCustomer:
			stats.Customers++
		case model.RoleWasher:
			stats.Washers++
			if a.User.Active {
				stats.ActiveWashers++
			}
		}
	}

	packages, err := u.catalog.ListAllPackages(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range packages {
		stats.Packages++
		if p.Active {
			stats.ActivePackages++
		}
	}

	addons, err := u.catalog.ListAllAddons(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range addons {
		stats.Addons++
		if a.Active {
			stats.ActiveAddons++
		}
	}

	orders, err := u.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Orders = *orders
	return &stats, nil
}
