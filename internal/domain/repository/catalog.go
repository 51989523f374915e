package repository

import (
	"context"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// CatalogRepository resolves wash packages and addons.
type CatalogRepository interface {
	GetPackage(ctx context.Context, id int64) (*model.WashPackage, error)
	// GetAddons returns the active addons among ids; other ids are skipped.
	GetAddons(ctx context.Context, ids []int64) ([]model.Addon, error)
	// ListPackages and ListAddons return the active items only.
	ListPackages(ctx context.Context) ([]model.WashPackage, error)
	ListAddons(ctx context.Context) ([]model.Addon, error)
	ListAllPackages(ctx context.Context) ([]model.WashPackage, error)
	ListAllAddons(ctx context.Context) ([]model.Addon, error)
	CreatePackage(ctx context.Context, pkg model.WashPackage) (*model.WashPackage, error)
	CreateAddon(ctx context.Context, addon model.Addon) (*model.Addon, error)
	UpdatePackage(ctx context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error)
	UpdateAddon(ctx context.Context, id int64, update model.AddonUpdate) (*model.Addon, error)
}
