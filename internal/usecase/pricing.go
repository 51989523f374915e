package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
)

// PricingUseCase computes order totals from the catalog.
type PricingUseCase struct {
	catalog repository.CatalogRepository
}

// NewPricingUseCase constructs PricingUseCase.
func NewPricingUseCase(catalog repository.CatalogRepository) *PricingUseCase {
	return &PricingUseCase{catalog: catalog}
}

// Quote resolves the package and addons and sums their prices. The total is
// rounded to two decimal places and never negative.
func (u *PricingUseCase) Quote(ctx context.Context, packageID int64, addonIDs []int64) (*model.Quote, error) {
	seen := make(map[int64]struct{}, len(addonIDs))
	for _, id := range addonIDs {
		if _, dup := seen[id]; dup {
			return nil, domainErrors.Newf(domainErrors.ErrInvalidInput, "addon %d selected more than once", id)
		}
		seen[id] = struct{}{}
	}

	pkg, err := u.catalog.GetPackage(ctx, packageID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.New(domainErrors.ErrNotFound, "wash package not found")
		}
		return nil, err
	}
	if !pkg.Active {
		return nil, domainErrors.New(domainErrors.ErrNotFound, "wash package not found")
	}

	var addons []model.Addon
	if len(addonIDs) > 0 {
		addons, err = u.catalog.GetAddons(ctx, addonIDs)
		if err != nil {
			return nil, err
		}
		if len(addons) != len(addonIDs) {
			return nil, domainErrors.New(domainErrors.ErrInvalidInput, "one or more addons are invalid")
		}
	}

	return &model.Quote{
		Package: *pkg,
		Addons:  addons,
		Total:   Total(pkg.Price, addons),
	}, nil
}

// Total sums the package price and addon prices.
func Total(base decimal.Decimal, addons []model.Addon) decimal.Decimal {
	total := base
	for _, a := range addons {
		total = total.Add(a.Price)
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}
