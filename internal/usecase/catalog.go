package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
)

// CatalogUseCase exposes and maintains wash packages and addons.
type CatalogUseCase struct {
	catalog repository.CatalogRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog}
}

func (u *CatalogUseCase) Packages(ctx context.Context) ([]model.WashPackage, error) {
	return u.catalog.ListPackages(ctx)
}

func (u *CatalogUseCase) Addons(ctx context.Context) ([]model.Addon, error) {
	return u.catalog.ListAddons(ctx)
}

// AllPackages includes deactivated packages, for admins.
func (u *CatalogUseCase) AllPackages(ctx context.Context) ([]model.WashPackage, error) {
	return u.catalog.ListAllPackages(ctx)
}

func (u *CatalogUseCase) AllAddons(ctx context.Context) ([]model.Addon, error) {
	return u.catalog.ListAllAddons(ctx)
}

// CreatePackage adds an active wash package.
func (u *CatalogUseCase) CreatePackage(ctx context.Context, name, description string, price decimal.Decimal) (*model.WashPackage, error) {
	name = strings.TrimSpace(name)
	if err := validateItem(name, price); err != nil {
		return nil, err
	}
	return u.catalog.CreatePackage(ctx, model.WashPackage{
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       price.Round(2),
		Active:      true,
	})
}

// CreateAddon adds an addon.
func (u *CatalogUseCase) CreateAddon(ctx context.Context, name string, price decimal.Decimal) (*model.Addon, error) {
	name = strings.TrimSpace(name)
	if err := validateItem(name, price); err != nil {
		return nil, err
	}
	return u.catalog.CreateAddon(ctx, model.Addon{Name: name, Price: price.Round(2), Active: true})
}

// UpdatePackage changes the given fields of a package. Orders keep the total
// captured at placement, so a price change only affects new quotes.
func (u *CatalogUseCase) UpdatePackage(ctx context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error) {
	if update.Empty() {
		return nil, errNothingToUpdate
	}
	var err error
	if update.Name, update.Price, err = normalizeItem(update.Name, update.Price); err != nil {
		return nil, err
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		update.Description = &description
	}
	return u.catalog.UpdatePackage(ctx, id, update)
}

// UpdateAddon changes the given fields of an addon.
func (u *CatalogUseCase) UpdateAddon(ctx context.Context, id int64, update model.AddonUpdate) (*model.Addon, error) {
	if update.Empty() {
		return nil, errNothingToUpdate
	}
	var err error
	if update.Name, update.Price, err = normalizeItem(update.Name, update.Price); err != nil {
		return nil, err
	}
	return u.catalog.UpdateAddon(ctx, id, update)
}

// DeactivatePackage withdraws a package from sale. Rows stay because
// orders reference them.
func (u *CatalogUseCase) DeactivatePackage(ctx context.Context, id int64) (*model.WashPackage, error) {
	inactive := false
	return u.catalog.UpdatePackage(ctx, id, model.PackageUpdate{Active: &inactive})
}

func (u *CatalogUseCase) DeactivateAddon(ctx context.Context, id int64) (*model.Addon, error) {
	inactive := false
	return u.catalog.UpdateAddon(ctx, id, model.AddonUpdate{Active: &inactive})
}

var errNothingToUpdate = domainErrors.New(domainErrors.ErrInvalidInput, "nothing to update")

// normalizeItem validates the optional name and price of an update.
func normalizeItem(name *string, price *decimal.Decimal) (*string, *decimal.Decimal, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, nil, domainErrors.New(domainErrors.ErrInvalidInput, "name is required")
		}
		name = &trimmed
	}
	if price != nil {
		if price.IsNegative() {
			return nil, nil, domainErrors.New(domainErrors.ErrInvalidInput, "price must not be negative")
		}
		rounded := price.Round(2)
		price = &rounded
	}
	return name, price, nil
}

func validateItem(name string, price decimal.Decimal) error {
	if name == "" {
		return domainErrors.New(domainErrors.ErrInvalidInput, "name is required")
	}
	if price.IsNegative() {
		return domainErrors.New(domainErrors.ErrInvalidInput, "price must not be negative")
	}
	return nil
}
