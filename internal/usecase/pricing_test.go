package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

func TestPricingQuoteSumsPackageAndAddons(t *testing.T) {
	f := newFixture(t)
	pricing := NewPricingUseCase(f.store.Catalog())

	quote, err := pricing.Quote(t.Context(), f.pkg.ID, []int64{f.wax.ID, f.interior.ID})
	require.NoError(t, err)
	assert.Equal(t, f.pkg.ID, quote.Package.ID)
	assert.Len(t, quote.Addons, 2)
	assert.Equal(t, "42.50", quote.Total.StringFixed(2))

	quote, err = pricing.Quote(t.Context(), f.pkg.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, quote.Addons)
	assert.True(t, quote.Total.Equal(f.pkg.Price))
}

func TestPricingQuoteRejectsInvalidSelection(t *testing.T) {
	f := newFixture(t)
	retired := f.store.SeedPackage(model.WashPackage{Name: "Retired", Price: decimal.NewFromInt(5)})
	pricing := NewPricingUseCase(f.store.Catalog())

	cases := []struct {
		name      string
		packageID int64
		addonIDs  []int64
		want      error
	}{
		{"duplicate addon", f.pkg.ID, []int64{f.wax.ID, f.wax.ID}, domainErrors.ErrInvalidInput},
		{"unknown addon", f.pkg.ID, []int64{f.wax.ID, 9999}, domainErrors.ErrInvalidInput},
		{"unknown package", 9999, nil, domainErrors.ErrNotFound},
		{"inactive package", retired.ID, nil, domainErrors.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.Quote(t.Context(), tc.packageID, tc.addonIDs)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPricingQuotePropagatesCatalogErrors(t *testing.T) {
	f := newFixture(t)
	pricing := NewPricingUseCase(f.store.Catalog())
	boom := errors.New("catalog down")

	f.store.SetErr("Catalog.GetAddons", boom)
	_, err := pricing.Quote(t.Context(), f.pkg.ID, []int64{f.wax.ID})
	assert.ErrorIs(t, err, boom)

	f.store.SetErr("Catalog.GetPackage", boom)
	_, err = pricing.Quote(t.Context(), f.pkg.ID, nil)
	assert.ErrorIs(t, err, boom)
}

func TestTotal(t *testing.T) {
	d := decimal.RequireFromString
	cases := []struct {
		name   string
		base   decimal.Decimal
		addons []string
		want   string
	}{
		{"package only", d("25.00"), nil, "25.00"},
		{"with addons", d("25.00"), []string{"10.00", "0.99"}, "35.99"},
		{"rounds to cents", d("10.005"), []string{"0.001"}, "10.01"},
		{"never negative", d("5.00"), []string{"-9.00"}, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var addons []model.Addon
			for _, p := range tc.addons {
				addons = append(addons, model.Addon{Price: d(p)})
			}
			assert.Equal(t, tc.want, Total(tc.base, addons).StringFixed(2))
		})
	}
}
