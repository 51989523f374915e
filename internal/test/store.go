package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
)

type txKey struct{}

type vehicleRow struct {
	model.Vehicle
	deleted bool
}

type storeState struct {
	seq      int64
	users    map[int64]model.User
	packages map[int64]model.WashPackage
	addons   map[int64]model.Addon
	vehicles map[int64]vehicleRow
	orders   map[int64]model.Order
	receipts map[int64]model.Receipt
	ratings  map[int64]model.Rating
}

func (s storeState) clone() storeState {
	c := storeState{
		seq:      s.seq,
		users:    make(map[int64]model.User, len(s.users)),
		packages: make(map[int64]model.WashPackage, len(s.packages)),
		addons:   make(map[int64]model.Addon, len(s.addons)),
		vehicles: make(map[int64]vehicleRow, len(s.vehicles)),
		orders:   make(map[int64]model.Order, len(s.orders)),
		receipts: make(map[int64]model.Receipt, len(s.receipts)),
		ratings:  make(map[int64]model.Rating, len(s.ratings)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.packages {
		c.packages[k] = v
	}
	for k, v := range s.addons {
		c.addons[k] = v
	}
	for k, v := range s.vehicles {
		c.vehicles[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = cloneOrder(v)
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.ratings {
		c.ratings[k] = v
	}
	return c
}

func cloneOrder(o model.Order) model.Order {
	o.AddonIDs = append([]int64(nil), o.AddonIDs...)
	if o.WasherID != nil {
		id := *o.WasherID
		o.WasherID = &id
	}
	if o.CompletedAt != nil {
		at := *o.CompletedAt
		o.CompletedAt = &at
	}
	return o
}

// MemoryStore is an in-memory repository.Factory. Conditional updates are
// atomic under a single mutex, and transactions are serialized and rolled
// back on error, so concurrency tests observe the same outcomes as Postgres.
type MemoryStore struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	state storeState

	// Now overrides the clock used for timestamps.
	Now func() time.Time
	// Errs injects failures keyed by "<Repo>.<Method>", e.g. "Receipts.Create".
	Errs map[string]error
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: storeState{
			users:    make(map[int64]model.User),
			packages: make(map[int64]model.WashPackage),
			addons:   make(map[int64]model.Addon),
			vehicles: make(map[int64]vehicleRow),
			orders:   make(map[int64]model.Order),
			receipts: make(map[int64]model.Receipt),
			ratings:  make(map[int64]model.Rating),
		},
		Errs: make(map[string]error),
	}
}

var _ repository.Factory = (*MemoryStore)(nil)

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *MemoryStore) nextID() int64 {
	s.state.seq++
	return s.state.seq
}

// fail must be called with s.mu held.
func (s *MemoryStore) fail(op string) error {
	return s.Errs[op]
}

// SetErr injects err for op; a nil err clears it.
func (s *MemoryStore) SetErr(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.Errs, op)
		return
	}
	s.Errs[op] = err
}

// WithinTransaction serializes transactions and restores the previous state
// when fn fails. Nested calls join the outer transaction.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	if err := s.fail("Tx.Begin"); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.state.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) Users() repository.UserRepository       { return memoryUsers{s} }
func (s *MemoryStore) Orders() repository.OrderRepository     { return memoryOrders{s} }
func (s *MemoryStore) Catalog() repository.CatalogRepository  { return memoryCatalog{s} }
func (s *MemoryStore) Vehicles() repository.VehicleRepository { return memoryVehicles{s} }
func (s *MemoryStore) Receipts() repository.ReceiptRepository { return memoryReceipts{s} }
func (s *MemoryStore) Ratings() repository.RatingRepository   { return memoryRatings{s} }

// SeedUser inserts a user and returns it.
func (s *MemoryStore) SeedUser(login string, role model.Role) model.User {
	u, _ := s.Users().Create(context.Background(), login, "hash:"+login, role)
	return *u
}

// SeedVehicle inserts a vehicle for customerID.
func (s *MemoryStore) SeedVehicle(customerID int64) model.Vehicle {
	v, _ := s.Vehicles().Create(context.Background(), model.Vehicle{
		CustomerID: customerID, Make: "Toyota", Model: "Corolla", LicensePlate: "KA01AB1234",
	})
	return *v
}

// SeedPackage inserts a wash package.
func (s *MemoryStore) SeedPackage(pkg model.WashPackage) model.WashPackage {
	p, _ := s.Catalog().CreatePackage(context.Background(), pkg)
	return *p
}

// SeedAddon inserts an active addon.
func (s *MemoryStore) SeedAddon(addon model.Addon) model.Addon {
	addon.Active = true
	a, _ := s.Catalog().CreateAddon(context.Background(), addon)
	return *a
}

// PutOrder stores order as is, for tests that need a specific state.
func (s *MemoryStore) PutOrder(order model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.nextID()
	}
	s.state.orders[order.ID] = cloneOrder(order)
	return order
}

// OrderState returns the stored order.
func (s *MemoryStore) OrderState(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.state.orders[id]
	return cloneOrder(o), ok
}

// ReceiptCount returns the number of stored receipts.
func (s *MemoryStore) ReceiptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.receipts)
}

// RatingCount returns the number of stored ratings.
func (s *MemoryStore) RatingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.ratings)
}

func notFound(what string) error {
	return domainErrors.New(domainErrors.ErrNotFound, what+" not found")
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.Create"); err != nil {
		return nil, err
	}
	for _, u := range r.s.state.users {
		if u.Login == login {
			return nil, domainErrors.New(domainErrors.ErrConflict, "user already exists")
		}
	}
	u := model.User{ID: r.s.nextID(), Login: login, PasswordHash: passwordHash, Role: role, CreatedAt: r.s.now(), Active: true}
	r.s.state.users[u.ID] = u
	return &u, nil
}

func (r memoryUsers) GetByLogin(_ context.Context, login string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.GetByLogin"); err != nil {
		return nil, err
	}
	for _, u := range r.s.state.users {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, notFound("user")
}

func (r memoryUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.GetByID"); err != nil {
		return nil, err
	}
	u, ok := r.s.state.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &u, nil
}

func (r memoryUsers) SetActive(_ context.Context, id int64, role model.Role, active bool) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.SetActive"); err != nil {
		return nil, err
	}
	u, ok := r.s.state.users[id]
	if !ok || u.Role != role {
		return nil, notFound("user")
	}
	u.Active = active
	r.s.state.users[id] = u
	return &u, nil
}

func (r memoryUsers) Summaries(_ context.Context, role model.Role) ([]model.AccountSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.Summaries"); err != nil {
		return nil, err
	}
	var out []model.AccountSummary
	for _, u := range r.s.state.users {
		if role != "" && u.Role != role {
			continue
		}
		u.PasswordHash = ""
		sum := model.AccountSummary{User: u, Spent: decimal.Zero}
		for _, v := range r.s.state.vehicles {
			if v.CustomerID == u.ID && !v.deleted {
				sum.Vehicles++
			}
		}
		for _, o := range r.s.state.orders {
			if o.CustomerID != u.ID && !o.AssignedTo(u.ID) {
				continue
			}
			sum.Orders++
			if o.Status.Rateable() {
				sum.Completed++
			}
			if o.CustomerID == u.ID && o.Status == model.OrderStatusPaid {
				sum.Spent = sum.Spent.Add(o.Total)
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.ID < out[j].User.ID })
	return out, nil
}

type memoryCatalog struct{ s *MemoryStore }

func (r memoryCatalog) GetPackage(_ context.Context, id int64) (*model.WashPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Catalog.GetPackage"); err != nil {
		return nil, err
	}
	p, ok := r.s.state.packages[id]
	if !ok {
		return nil, notFound("wash package")
	}
	return &p, nil
}

func (r memoryCatalog) GetAddons(_ context.Context, ids []int64) ([]model.Addon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Catalog.GetAddons"); err != nil {
		return nil, err
	}
	var addons []model.Addon
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if a, ok := r.s.state.addons[id]; ok && a.Active && !seen[id] {
			seen[id] = true
			addons = append(addons, a)
		}
	}
	return addons, nil
}

func (r memoryCatalog) ListPackages(_ context.Context) ([]model.WashPackage, error) {
	return r.packages(true), nil
}

func (r memoryCatalog) ListAllPackages(_ context.Context) ([]model.WashPackage, error) {
	return r.packages(false), nil
}

func (r memoryCatalog) packages(activeOnly bool) []model.WashPackage {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.WashPackage
	for _, p := range r.s.state.packages {
		if p.Active || !activeOnly {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memoryCatalog) ListAddons(_ context.Context) ([]model.Addon, error) {
	return r.addons(true), nil
}

func (r memoryCatalog) ListAllAddons(_ context.Context) ([]model.Addon, error) {
	return r.addons(false), nil
}

func (r memoryCatalog) addons(activeOnly bool) []model.Addon {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Addon
	for _, a := range r.s.state.addons {
		if a.Active || !activeOnly {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memoryCatalog) CreatePackage(_ context.Context, pkg model.WashPackage) (*model.WashPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Catalog.CreatePackage"); err != nil {
		return nil, err
	}
	pkg.ID = r.s.nextID()
	r.s.state.packages[pkg.ID] = pkg
	return &pkg, nil
}

func (r memoryCatalog) CreateAddon(_ context.Context, addon model.Addon) (*model.Addon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Catalog.CreateAddon"); err != nil {
		return nil, err
	}
	addon.ID = r.s.nextID()
	r.s.state.addons[addon.ID] = addon
	return &addon, nil
}

func (r memoryCatalog) UpdatePackage(_ context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Catalog.UpdatePackage"); err != nil {
		return nil, err
	}
	p, ok := r.s.state.packages[id]
	if !ok {
		return nil, notFound("wash package")
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Active != nil {
		p.Active = *update.Active
	}
	r.s.state.packages[id] = p
	return &p, nil
}

func (r memoryCatalog) UpdateAddon(_ context.Context, id int64, update model.AddonUpdate) (*model.Addon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Catalog.UpdateAddon"); err != nil {
		return nil, err
	}
	a, ok := r.s.state.addons[id]
	if !ok {
		return nil, notFound("addon")
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.Price != nil {
		a.Price = *update.Price
	}
	if update.Active != nil {
		a.Active = *update.Active
	}
	r.s.state.addons[id] = a
	return &a, nil
}

type memoryVehicles struct{ s *MemoryStore }

func (r memoryVehicles) Create(_ context.Context, v model.Vehicle) (*model.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Vehicles.Create"); err != nil {
		return nil, err
	}
	v.ID = r.s.nextID()
	v.CreatedAt = r.s.now()
	r.s.state.vehicles[v.ID] = vehicleRow{Vehicle: v}
	return &v, nil
}

func (r memoryVehicles) GetForCustomer(_ context.Context, id, customerID int64) (*model.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.state.vehicles[id]
	if !ok || row.deleted || row.CustomerID != customerID {
		return nil, notFound("vehicle")
	}
	v := row.Vehicle
	return &v, nil
}

func (r memoryVehicles) ListByCustomer(_ context.Context, customerID int64) ([]model.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Vehicle
	for _, row := range r.s.state.vehicles {
		if row.CustomerID == customerID && !row.deleted {
			out = append(out, row.Vehicle)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memoryVehicles) HasActiveOrders(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.state.orders {
		if o.VehicleID == id && (o.Status == model.OrderStatusAssigned || o.Status == model.OrderStatusInProgress) {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryVehicles) Delete(_ context.Context, id, customerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.state.vehicles[id]
	if !ok || row.deleted || row.CustomerID != customerID {
		return notFound("vehicle")
	}
	row.deleted = true
	r.s.state.vehicles[id] = row
	return nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(_ context.Context, in model.NewOrder) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.Create"); err != nil {
		return nil, err
	}
	now := r.s.now()
	order := model.Order{
		ID:          r.s.nextID(),
		CustomerID:  in.CustomerID,
		VehicleID:   in.VehicleID,
		PackageID:   in.Quote.Package.ID,
		ScheduledAt: in.ScheduledAt,
		Status:      model.OrderStatusPending,
		Total:       in.Quote.Total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, a := range in.Quote.Addons {
		order.AddonIDs = append(order.AddonIDs, a.ID)
	}
	r.s.state.orders[order.ID] = cloneOrder(order)
	return &order, nil
}

func (r memoryOrders) Get(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.Get"); err != nil {
		return nil, err
	}
	o, ok := r.s.state.orders[id]
	if !ok {
		return nil, notFound("order")
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r memoryOrders) filter(keep func(model.Order) bool, asc bool) []model.Order {
	var out []model.Order
	for _, o := range r.s.state.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt) == asc
		}
		return (out[i].ID < out[j].ID) == asc
	})
	return out
}

func (r memoryOrders) ListPending(_ context.Context, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.ListPending"); err != nil {
		return nil, err
	}
	out := r.filter(func(o model.Order) bool { return o.Status == model.OrderStatusPending }, true)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memoryOrders) ListByCustomer(_ context.Context, customerID int64) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(o model.Order) bool { return o.CustomerID == customerID }, false), nil
}

func (r memoryOrders) ListByWasher(_ context.Context, washerID int64) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(o model.Order) bool { return o.AssignedTo(washerID) }, false), nil
}

func (r memoryOrders) ListAll(_ context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.ListAll"); err != nil {
		return nil, err
	}
	var out []model.Order
	for _, o := range r.s.state.orders {
		if status == "" || o.Status == status {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memoryOrders) Stats(_ context.Context) (*model.OrderStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.Stats"); err != nil {
		return nil, err
	}
	stats := model.OrderStats{ByStatus: make(map[model.OrderStatus]int), Revenue: decimal.Zero}
	for _, o := range r.s.state.orders {
		stats.Total++
		stats.ByStatus[o.Status]++
		if o.Status == model.OrderStatusPaid {
			stats.Revenue = stats.Revenue.Add(o.Total)
		}
	}
	return &stats, nil
}

func (r memoryOrders) Details(_ context.Context, id int64) (*model.OrderDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.Details"); err != nil {
		return nil, err
	}
	o, ok := r.s.state.orders[id]
	if !ok {
		return nil, notFound("order")
	}
	d := model.OrderDetails{
		OrderID:      o.ID,
		PackageName:  r.s.state.packages[o.PackageID].Name,
		VehicleMake:  r.s.state.vehicles[o.VehicleID].Make,
		VehicleModel: r.s.state.vehicles[o.VehicleID].Model,
		LicensePlate: r.s.state.vehicles[o.VehicleID].LicensePlate,
		ScheduledAt:  o.ScheduledAt,
		Total:        o.Total,
	}
	for _, addonID := range o.AddonIDs {
		d.AddonNames = append(d.AddonNames, r.s.state.addons[addonID].Name)
	}
	return &d, nil
}

// update applies mutate when cond holds, mirroring a conditional UPDATE.
func (r memoryOrders) update(op string, id int64, cond func(model.Order) bool, mutate func(*model.Order)) (*model.Order, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return nil, false, err
	}
	o, ok := r.s.state.orders[id]
	if !ok || !cond(o) {
		return nil, false, nil
	}
	o = cloneOrder(o)
	mutate(&o)
	o.UpdatedAt = r.s.now()
	r.s.state.orders[id] = o
	out := cloneOrder(o)
	return &out, true, nil
}

func (r memoryOrders) Claim(_ context.Context, id, washerID int64) (*model.Order, bool, error) {
	return r.update("Orders.Claim", id,
		func(o model.Order) bool { return o.Status == model.OrderStatusPending },
		func(o *model.Order) {
			o.Status = model.OrderStatusAssigned
			o.WasherID = &washerID
		})
}

func (r memoryOrders) Start(_ context.Context, id, washerID int64) (*model.Order, bool, error) {
	return r.update("Orders.Start", id,
		func(o model.Order) bool { return o.Status == model.OrderStatusAssigned && o.AssignedTo(washerID) },
		func(o *model.Order) { o.Status = model.OrderStatusInProgress })
}

func (r memoryOrders) Complete(_ context.Context, id, washerID int64, imageRef string) (*model.Order, bool, error) {
	return r.update("Orders.Complete", id,
		func(o model.Order) bool { return o.Status == model.OrderStatusInProgress && o.AssignedTo(washerID) },
		func(o *model.Order) {
			at := r.s.now()
			o.Status = model.OrderStatusCompleted
			o.ImageRef = imageRef
			o.CompletedAt = &at
		})
}

func (r memoryOrders) Cancel(_ context.Context, id, customerID int64) (*model.Order, bool, error) {
	return r.update("Orders.Cancel", id,
		func(o model.Order) bool { return o.Status == model.OrderStatusPending && o.CustomerID == customerID },
		func(o *model.Order) { o.Status = model.OrderStatusCancelled })
}

func (r memoryOrders) MarkPaid(_ context.Context, id int64, gatewayOrderRef, gatewayPaymentRef string) (*model.Order, bool, error) {
	return r.update("Orders.MarkPaid", id,
		func(o model.Order) bool {
			return o.Status == model.OrderStatusCompleted && o.GatewayOrderRef == gatewayOrderRef
		},
		func(o *model.Order) {
			o.Status = model.OrderStatusPaid
			o.GatewayPaymentRef = gatewayPaymentRef
		})
}

func (r memoryOrders) CancelStalePending(_ context.Context, before time.Time, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.CancelStalePending"); err != nil {
		return nil, err
	}
	stale := r.filter(func(o model.Order) bool {
		return o.Status == model.OrderStatusPending && o.ScheduledAt.Before(before)
	}, true)
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}
	now := r.s.now()
	for i := range stale {
		stale[i].Status = model.OrderStatusCancelled
		stale[i].UpdatedAt = now
		r.s.state.orders[stale[i].ID] = cloneOrder(stale[i])
	}
	return stale, nil
}

func (r memoryOrders) SetGatewayRef(_ context.Context, id int64, gatewayOrderRef string) (bool, error) {
	_, applied, err := r.update("Orders.SetGatewayRef", id,
		func(o model.Order) bool { return o.GatewayOrderRef == "" && !o.Status.Terminal() },
		func(o *model.Order) { o.GatewayOrderRef = gatewayOrderRef })
	return applied, err
}

type memoryReceipts struct{ s *MemoryStore }

func (r memoryReceipts) Create(_ context.Context, receipt model.Receipt) (*model.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Receipts.Create"); err != nil {
		return nil, err
	}
	if _, exists := r.s.state.receipts[receipt.OrderID]; exists {
		return nil, domainErrors.New(domainErrors.ErrConflict, "receipt already exists")
	}
	receipt.ID = r.s.nextID()
	r.s.state.receipts[receipt.OrderID] = receipt
	return &receipt, nil
}

func (r memoryReceipts) GetByOrder(_ context.Context, orderID, customerID int64) (*model.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc, ok := r.s.state.receipts[orderID]
	o := r.s.state.orders[orderID]
	if !ok || o.CustomerID != customerID {
		return nil, notFound("receipt")
	}
	rc.OrderStatus = o.Status
	return &rc, nil
}

type memoryRatings struct{ s *MemoryStore }

func (r memoryRatings) Create(_ context.Context, orderID, customerID int64, stars int, comment string) (*model.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Ratings.Create"); err != nil {
		return nil, err
	}
	o, ok := r.s.state.orders[orderID]
	if !ok || o.CustomerID != customerID || !o.Status.Rateable() || o.WasherID == nil {
		return nil, domainErrors.New(domainErrors.ErrNotFound, "order not found or not ready for rating")
	}
	if _, exists := r.s.state.ratings[orderID]; exists {
		return nil, domainErrors.New(domainErrors.ErrConflict, "order already rated")
	}
	rating := model.Rating{
		ID:         r.s.nextID(),
		OrderID:    orderID,
		CustomerID: customerID,
		WasherID:   *o.WasherID,
		Stars:      stars,
		Comment:    comment,
		CreatedAt:  r.s.now(),
	}
	r.s.state.ratings[orderID] = rating
	return &rating, nil
}

func (r memoryRatings) list(keep func(model.Rating) bool) []model.Rating {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Rating
	for _, rt := range r.s.state.ratings {
		if keep(rt) {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memoryRatings) ListByCustomer(_ context.Context, customerID int64) ([]model.Rating, error) {
	return r.list(func(rt model.Rating) bool { return rt.CustomerID == customerID }), nil
}

func (r memoryRatings) ListByWasher(_ context.Context, washerID int64) ([]model.Rating, error) {
	return r.list(func(rt model.Rating) bool { return rt.WasherID == washerID }), nil
}
