package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	testhelpers "github.com/Lonewolf123457499/CarWashApp/internal/test"
)

func TestVehicleAddAndList(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	customer := store.SeedUser("customer", model.RoleCustomer)
	uc := NewVehicleUseCase(store.Vehicles())

	v, err := uc.Add(t.Context(), customer.ID, " Honda ", "Civic", " ka02cd5678 ")
	require.NoError(t, err)
	assert.Equal(t, "Honda", v.Make)
	assert.Equal(t, "KA02CD5678", v.LicensePlate)

	_, err = uc.Add(t.Context(), customer.ID, "Honda", "", "KA02CD5678")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)

	list, err := uc.List(t.Context(), customer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, v.ID, list[0].ID)
}

func TestVehicleDelete(t *testing.T) {
	f := newFixture(t)
	uc := NewVehicleUseCase(f.store.Vehicles())

	order := f.placeOrder(t)
	_, _, err := f.orders.Claim(t.Context(), f.washers[0].ID, order.ID)
	require.NoError(t, err)

	err = uc.Delete(t.Context(), f.customer.ID, f.vehicle.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
	err = uc.Delete(t.Context(), f.other.ID, f.vehicle.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = f.orders.Start(t.Context(), f.washers[0].ID, order.ID)
	require.NoError(t, err)
	_, err = f.orders.Complete(t.Context(), f.washers[0].ID, order.ID, "img1")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(t.Context(), f.customer.ID, f.vehicle.ID))
	list, err := uc.List(t.Context(), f.customer.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = uc.Delete(t.Context(), f.customer.ID, f.vehicle.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
