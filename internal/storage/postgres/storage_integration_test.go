//go:build integration

package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/storage/postgres"
)

type StorageIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	storage   *postgres.Storage

	customer *model.User
	washers  []*model.User
	vehicle  *model.Vehicle
	pkg      *model.WashPackage
	addon    *model.Addon
}

func TestStorageIntegrationSuite(t *testing.T) {
	suite.Run(t, new(StorageIntegrationSuite))
}

func (s *StorageIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("carwash"),
		tcpostgres.WithUsername("carwash"),
		tcpostgres.WithPassword("carwash"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.storage, err = postgres.New(ctx, dsn, 3, logger)
	s.Require().NoError(err)

	s.customer, err = s.storage.Users().Create(ctx, "customer", "hash", model.RoleCustomer)
	s.Require().NoError(err)
	for _, login := range []string{"washer-a", "washer-b", "washer-c", "washer-d", "washer-e"} {
		washer, err := s.storage.Users().Create(ctx, login, "hash", model.RoleWasher)
		s.Require().NoError(err)
		s.washers = append(s.washers, washer)
	}

	s.vehicle, err = s.storage.Vehicles().Create(ctx, model.Vehicle{
		CustomerID: s.customer.ID, Make: "Toyota", Model: "Corolla", LicensePlate: "KA01AB1234",
	})
	s.Require().NoError(err)

	s.pkg, err = s.storage.Catalog().CreatePackage(ctx, model.WashPackage{
		Name: "Premium", Price: decimal.RequireFromString("25.00"), Active: true,
	})
	s.Require().NoError(err)

	s.addon, err = s.storage.Catalog().CreateAddon(ctx, model.Addon{Name: "Wax", Price: decimal.RequireFromString("10.00"), Active: true})
	s.Require().NoError(err)
}

func (s *StorageIntegrationSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *StorageIntegrationSuite) placeOrder() *model.Order {
	order, err := s.storage.Orders().Create(context.Background(), model.NewOrder{
		CustomerID:  s.customer.ID,
		VehicleID:   s.vehicle.ID,
		ScheduledAt: time.Now().Add(time.Hour).UTC(),
		Quote: model.Quote{
			Package: *s.pkg,
			Addons:  []model.Addon{*s.addon},
			Total:   s.pkg.Price.Add(s.addon.Price),
		},
	})
	s.Require().NoError(err)
	return order
}

func (s *StorageIntegrationSuite) TestCreateAndGet() {
	order := s.placeOrder()

	got, err := s.storage.Orders().Get(context.Background(), order.ID)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusPending, got.Status)
	s.Nil(got.WasherID)
	s.Equal([]int64{s.addon.ID}, got.AddonIDs)
	s.True(got.Total.Equal(decimal.RequireFromString("35")))

	details, err := s.storage.Orders().Details(context.Background(), order.ID)
	s.Require().NoError(err)
	s.Equal("Premium", details.PackageName)
	s.Equal([]string{"Wax"}, details.AddonNames)
}

func (s *StorageIntegrationSuite) TestConcurrentClaimHasSingleWinner() {
	order := s.placeOrder()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []int64
	)
	for _, washer := range s.washers {
		wg.Add(1)
		go func(washerID int64) {
			defer wg.Done()
			_, applied, err := s.storage.Orders().Claim(context.Background(), order.ID, washerID)
			s.NoError(err)
			if applied {
				mu.Lock()
				winners = append(winners, washerID)
				mu.Unlock()
			}
		}(washer.ID)
	}
	wg.Wait()

	s.Require().Len(winners, 1)
	got, err := s.storage.Orders().Get(context.Background(), order.ID)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusAssigned, got.Status)
	s.True(got.AssignedTo(winners[0]))
}

func (s *StorageIntegrationSuite) TestLifecycleAndRatingUniqueness() {
	ctx := context.Background()
	order := s.placeOrder()
	washerID := s.washers[0].ID

	err := s.storage.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, applied, err := s.storage.Orders().Claim(ctx, order.ID, washerID); err != nil || !applied {
			return err
		}
		details, err := s.storage.Orders().Details(ctx, order.ID)
		if err != nil {
			return err
		}
		_, err = s.storage.Receipts().Create(ctx, model.NewReceipt(*details, time.Now()))
		return err
	})
	s.Require().NoError(err)

	receipt, err := s.storage.Receipts().GetByOrder(ctx, order.ID, s.customer.ID)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusAssigned, receipt.OrderStatus)

	_, applied, err := s.storage.Orders().Start(ctx, order.ID, washerID)
	s.Require().NoError(err)
	s.Require().True(applied)

	_, applied, err = s.storage.Orders().Start(ctx, order.ID, washerID)
	s.Require().NoError(err)
	s.False(applied)

	completed, applied, err := s.storage.Orders().Complete(ctx, order.ID, washerID, "img1")
	s.Require().NoError(err)
	s.Require().True(applied)
	s.NotNil(completed.CompletedAt)
	s.Equal("img1", completed.ImageRef)

	stored, err := s.storage.Orders().SetGatewayRef(ctx, order.ID, "order_int_1")
	s.Require().NoError(err)
	s.True(stored)
	stored, err = s.storage.Orders().SetGatewayRef(ctx, order.ID, "order_int_2")
	s.Require().NoError(err)
	s.False(stored)

	paid, applied, err := s.storage.Orders().MarkPaid(ctx, order.ID, "order_int_1", "pay_1")
	s.Require().NoError(err)
	s.Require().True(applied)
	s.Equal(model.OrderStatusPaid, paid.Status)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.storage.Ratings().Create(ctx, order.ID, s.customer.ID, 5, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case domainErrors.Kind(err) == domainErrors.ErrConflict:
				conflicts++
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(1, created)
	s.Equal(4, conflicts)
}

func (s *StorageIntegrationSuite) TestAdminCatalogMaintenance() {
	ctx := context.Background()
	catalog := s.storage.Catalog()

	pkg, err := catalog.CreatePackage(ctx, model.WashPackage{Name: "Seasonal", Price: decimal.RequireFromString("12"), Active: true})
	s.Require().NoError(err)

	price := decimal.RequireFromString("14.50")
	updated, err := catalog.UpdatePackage(ctx, pkg.ID, model.PackageUpdate{Price: &price})
	s.Require().NoError(err)
	s.Equal("Seasonal", updated.Name)
	s.True(updated.Price.Equal(price))
	s.True(updated.Active)

	inactive := false
	_, err = catalog.UpdatePackage(ctx, pkg.ID, model.PackageUpdate{Active: &inactive})
	s.Require().NoError(err)
	active, err := catalog.ListPackages(ctx)
	s.Require().NoError(err)
	for _, p := range active {
		s.NotEqual(pkg.ID, p.ID, "deactivated package must leave the public catalog")
	}
	all, err := catalog.ListAllPackages(ctx)
	s.Require().NoError(err)
	var retired *model.WashPackage
	for i := range all {
		if all[i].ID == pkg.ID {
			retired = &all[i]
		}
	}
	s.Require().NotNil(retired)
	s.False(retired.Active)

	polish, err := catalog.CreateAddon(ctx, model.Addon{Name: "Polish", Price: decimal.RequireFromString("3"), Active: true})
	s.Require().NoError(err)
	_, err = catalog.UpdateAddon(ctx, polish.ID, model.AddonUpdate{Active: &inactive})
	s.Require().NoError(err)
	addons, err := catalog.GetAddons(ctx, []int64{s.addon.ID, polish.ID})
	s.Require().NoError(err)
	s.Equal([]model.Addon{*s.addon}, addons)

	_, err = catalog.UpdateAddon(ctx, 999999, model.AddonUpdate{Active: &inactive})
	s.Equal(domainErrors.ErrNotFound, domainErrors.Kind(err))
}

func (s *StorageIntegrationSuite) TestAdminReporting() {
	ctx := context.Background()
	first := s.placeOrder()
	second := s.placeOrder()

	pending, err := s.storage.Orders().ListAll(ctx, model.OrderStatusPending, 500)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(pending), 2)
	position := map[int64]int{}
	for i, o := range pending {
		s.Equal(model.OrderStatusPending, o.Status)
		position[o.ID] = i
	}
	s.Less(position[second.ID], position[first.ID], "newest order first")

	stats, err := s.storage.Orders().Stats(ctx)
	s.Require().NoError(err)
	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	s.Equal(stats.Total, sum)
	s.GreaterOrEqual(stats.ByStatus[model.OrderStatusPending], 2)

	customers, err := s.storage.Users().Summaries(ctx, model.RoleCustomer)
	s.Require().NoError(err)
	s.Require().Len(customers, 1)
	s.Equal(1, customers[0].Vehicles)
	s.GreaterOrEqual(customers[0].Orders, 2)
	s.Empty(customers[0].User.PasswordHash)

	washer := s.washers[len(s.washers)-1]
	off, err := s.storage.Users().SetActive(ctx, washer.ID, model.RoleWasher, false)
	s.Require().NoError(err)
	s.False(off.Active)
	on, err := s.storage.Users().SetActive(ctx, washer.ID, model.RoleWasher, true)
	s.Require().NoError(err)
	s.True(on.Active)

	_, err = s.storage.Users().SetActive(ctx, s.customer.ID, model.RoleWasher, false)
	s.Equal(domainErrors.ErrNotFound, domainErrors.Kind(err))
}

func (s *StorageIntegrationSuite) TestCancelStalePending() {
	ctx := context.Background()
	order := s.placeOrder()

	cancelled, err := s.storage.Orders().CancelStalePending(ctx, time.Now().Add(2*time.Hour), 100)
	s.Require().NoError(err)

	var found bool
	for _, o := range cancelled {
		s.Equal(model.OrderStatusCancelled, o.Status)
		if o.ID == order.ID {
			found = true
		}
	}
	s.True(found)

	_, applied, err := s.storage.Orders().Claim(ctx, order.ID, s.washers[0].ID)
	s.Require().NoError(err)
	s.False(applied)
}
