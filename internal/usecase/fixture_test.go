package usecase

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/lock"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/pkg/payment"
	testhelpers "github.com/Lonewolf123457499/CarWashApp/internal/test"
)

const testPaymentSecret = "callback-secret"

var fixedNow = time.Date(2025, 7, 26, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store    *testhelpers.MemoryStore
	notifier *testhelpers.NotifierRecorder
	gateway  *testhelpers.GatewayStub
	locker   *lock.Memory
	signer   *payment.Signer

	orders   *OrderUseCase
	payments *PaymentUseCase
	ratings  *RatingUseCase

	customer model.User
	other    model.User
	washers  []model.User
	vehicle  model.Vehicle
	pkg      model.WashPackage
	wax      model.Addon
	interior model.Addon
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testhelpers.NewMemoryStore()
	store.Now = func() time.Time { return fixedNow }

	f := &fixture{
		store:    store,
		notifier: &testhelpers.NotifierRecorder{},
		gateway:  &testhelpers.GatewayStub{},
		locker:   lock.NewMemory(),
		signer:   payment.NewSigner(testPaymentSecret),
	}

	pricing := NewPricingUseCase(store.Catalog())
	f.orders = NewOrderUseCase(store, store.Orders(), store.Vehicles(), store.Receipts(), store.Users(), pricing, f.notifier, 24*time.Hour, discardLogger())
	f.orders.now = func() time.Time { return fixedNow }
	f.payments = NewPaymentUseCase(store.Orders(), f.gateway, f.locker, f.signer, "INR", f.notifier, discardLogger())
	f.payments.now = func() time.Time { return fixedNow }
	f.ratings = NewRatingUseCase(store.Ratings())

	f.customer = store.SeedUser("customer", model.RoleCustomer)
	f.other = store.SeedUser("other", model.RoleCustomer)
	for _, login := range []string{"washer-a", "washer-b"} {
		f.washers = append(f.washers, store.SeedUser(login, model.RoleWasher))
	}
	f.vehicle = store.SeedVehicle(f.customer.ID)
	f.pkg = store.SeedPackage(model.WashPackage{Name: "Premium", Price: decimal.RequireFromString("25.00"), Active: true})
	f.wax = store.SeedAddon(model.Addon{Name: "Wax", Price: decimal.RequireFromString("10.00")})
	f.interior = store.SeedAddon(model.Addon{Name: "Interior", Price: decimal.RequireFromString("7.50")})
	return f
}

// placeOrder stores a Pending order with the wax addon.
func (f *fixture) placeOrder(t *testing.T) *model.Order {
	t.Helper()
	order, err := f.orders.PlaceOrder(t.Context(), f.customer.ID, f.vehicle.ID, f.pkg.ID, []int64{f.wax.ID}, fixedNow.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}

// completedOrder drives a fresh order to Completed by the first washer.
func (f *fixture) completedOrder(t *testing.T) *model.Order {
	t.Helper()
	order := f.placeOrder(t)
	washerID := f.washers[0].ID
	if _, _, err := f.orders.Claim(t.Context(), washerID, order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := f.orders.Start(t.Context(), washerID, order.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	completed, err := f.orders.Complete(t.Context(), washerID, order.ID, "img1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	return completed
}
