package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

const orderColumns = `o.id, o.customer_id, o.washer_id, o.vehicle_id, o.package_id,
    ARRAY(SELECT oa.addon_id FROM order_addons oa WHERE oa.order_id = o.id ORDER BY oa.position),
    o.scheduled_at, o.completed_at, o.status, o.total, o.image_ref,
    COALESCE(o.gateway_order_ref, ''), COALESCE(o.gateway_payment_ref, ''),
    o.created_at, o.updated_at`

const selectOrders = `SELECT ` + orderColumns + ` FROM orders o`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.WasherID, &o.VehicleID, &o.PackageID,
		&o.AddonIDs,
		&o.ScheduledAt, &o.CompletedAt, &o.Status, &o.Total, &o.ImageRef,
		&o.GatewayOrderRef, &o.GatewayPaymentRef,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Create inserts a Pending order together with its priced addons.
func (r *orderRepository) Create(ctx context.Context, in model.NewOrder) (*model.Order, error) {
	const insertOrder = `INSERT INTO orders (customer_id, vehicle_id, package_id, scheduled_at, status, total)
                         VALUES ($1, $2, $3, $4, $5, $6)
                         RETURNING id, created_at, updated_at`
	const insertAddon = `INSERT INTO order_addons (order_id, addon_id, position, price) VALUES ($1, $2, $3, $4)`

	order := model.Order{
		CustomerID:  in.CustomerID,
		VehicleID:   in.VehicleID,
		PackageID:   in.Quote.Package.ID,
		ScheduledAt: in.ScheduledAt,
		Status:      model.OrderStatusPending,
		Total:       in.Quote.Total,
	}

	err := r.storage.WithinTransaction(ctx, func(ctx context.Context) error {
		db := r.storage.db(ctx)
		err := db.QueryRow(ctx, insertOrder,
			order.CustomerID, order.VehicleID, order.PackageID, order.ScheduledAt, order.Status, order.Total,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return classify(err, "order")
		}

		for i, addon := range in.Quote.Addons {
			if _, err := db.Exec(ctx, insertAddon, order.ID, addon.ID, i, addon.Price); err != nil {
				return classify(err, "order addon")
			}
			order.AddonIDs = append(order.AddonIDs, addon.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.storage.read(ctx, func(db querier) error {
		var err error
		order, err = scanOrder(db.QueryRow(ctx, selectOrders+` WHERE o.id=$1`, id))
		return classify(err, "order")
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListPending(ctx context.Context, limit int) ([]model.Order, error) {
	const query = selectOrders + ` WHERE o.status=$1 ORDER BY o.scheduled_at, o.id LIMIT $2`
	return r.list(ctx, query, model.OrderStatusPending, limit)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	const query = selectOrders + ` WHERE o.customer_id=$1 ORDER BY o.scheduled_at DESC, o.id DESC`
	return r.list(ctx, query, customerID)
}

func (r *orderRepository) ListByWasher(ctx context.Context, washerID int64) ([]model.Order, error) {
	const query = selectOrders + ` WHERE o.washer_id=$1 ORDER BY o.scheduled_at DESC, o.id DESC`
	return r.list(ctx, query, washerID)
}

// ListAll orders by creation, newest first. An empty status matches all.
func (r *orderRepository) ListAll(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	const query = selectOrders + ` WHERE $1 = '' OR o.status = $1 ORDER BY o.created_at DESC, o.id DESC LIMIT $2`
	return r.list(ctx, query, string(status), limit)
}

// Stats counts orders per status and sums the totals of Paid orders.
func (r *orderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	const query = `SELECT status, COUNT(*), COALESCE(SUM(total), 0) FROM orders GROUP BY status`

	var stats model.OrderStats
	err := r.storage.read(ctx, func(db querier) error {
		stats = model.OrderStats{ByStatus: make(map[model.OrderStatus]int), Revenue: decimal.Zero}
		rows, err := db.Query(ctx, query)
		if err != nil {
			return classify(err, "order")
		}
		defer rows.Close()

		for rows.Next() {
			var (
				status model.OrderStatus
				count  int
				sum    decimal.Decimal
			)
			if err := rows.Scan(&status, &count, &sum); err != nil {
				return classify(err, "order")
			}
			stats.ByStatus[status] = count
			stats.Total += count
			if status == model.OrderStatusPaid {
				stats.Revenue = sum
			}
		}
		return classify(rows.Err(), "order")
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	var orders []model.Order
	err := r.storage.read(ctx, func(db querier) error {
		rows, err := db.Query(ctx, query, args...)
		if err != nil {
			return classify(err, "order")
		}
		orders, err = collect(rows, scanOrder)
		return classify(err, "order")
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Details reads the snapshot a receipt is rendered from.
func (r *orderRepository) Details(ctx context.Context, id int64) (*model.OrderDetails, error) {
	const query = `SELECT o.id, p.name, v.make, v.model, v.license_plate,
                          ARRAY(SELECT a.name FROM order_addons oa JOIN addons a ON a.id = oa.addon_id
                                WHERE oa.order_id = o.id ORDER BY oa.position),
                          o.scheduled_at, o.total
                   FROM orders o
                   JOIN wash_packages p ON p.id = o.package_id
                   JOIN vehicles v ON v.id = o.vehicle_id
                   WHERE o.id=$1`

	var d model.OrderDetails
	err := r.storage.read(ctx, func(db querier) error {
		err := db.QueryRow(ctx, query, id).Scan(
			&d.OrderID, &d.PackageName, &d.VehicleMake, &d.VehicleModel, &d.LicensePlate,
			&d.AddonNames, &d.ScheduledAt, &d.Total,
		)
		return classify(err, "order")
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Claim moves a Pending order to Assigned for washerID.
func (r *orderRepository) Claim(ctx context.Context, id, washerID int64) (*model.Order, bool, error) {
	const query = `UPDATE orders o SET status=$3, washer_id=$2, updated_at=NOW()
                   WHERE o.id=$1 AND o.status=$4
                   RETURNING ` + orderColumns
	return r.transition(ctx, query, id, washerID, model.OrderStatusAssigned, model.OrderStatusPending)
}

// Start moves an Assigned order held by washerID to InProgress.
func (r *orderRepository) Start(ctx context.Context, id, washerID int64) (*model.Order, bool, error) {
	const query = `UPDATE orders o SET status=$3, updated_at=NOW()
                   WHERE o.id=$1 AND o.washer_id=$2 AND o.status=$4
                   RETURNING ` + orderColumns
	return r.transition(ctx, query, id, washerID, model.OrderStatusInProgress, model.OrderStatusAssigned)
}

// Complete moves an InProgress order held by washerID to Completed.
func (r *orderRepository) Complete(ctx context.Context, id, washerID int64, imageRef string) (*model.Order, bool, error) {
	const query = `UPDATE orders o SET status=$4, image_ref=$3, completed_at=NOW(), updated_at=NOW()
                   WHERE o.id=$1 AND o.washer_id=$2 AND o.status=$5
                   RETURNING ` + orderColumns
	return r.transition(ctx, query, id, washerID, imageRef, model.OrderStatusCompleted, model.OrderStatusInProgress)
}

// Cancel moves a Pending order owned by customerID to Cancelled.
func (r *orderRepository) Cancel(ctx context.Context, id, customerID int64) (*model.Order, bool, error) {
	const query = `UPDATE orders o SET status=$3, updated_at=NOW()
                   WHERE o.id=$1 AND o.customer_id=$2 AND o.status=$4
                   RETURNING ` + orderColumns
	return r.transition(ctx, query, id, customerID, model.OrderStatusCancelled, model.OrderStatusPending)
}

// MarkPaid moves a Completed order to Paid when the gateway order reference matches.
func (r *orderRepository) MarkPaid(ctx context.Context, id int64, gatewayOrderRef, gatewayPaymentRef string) (*model.Order, bool, error) {
	const query = `UPDATE orders o SET status=$4, gateway_payment_ref=$3, updated_at=NOW()
                   WHERE o.id=$1 AND o.gateway_order_ref=$2 AND o.status=$5
                   RETURNING ` + orderColumns
	return r.transition(ctx, query, id, gatewayOrderRef, gatewayPaymentRef, model.OrderStatusPaid, model.OrderStatusCompleted)
}

func (r *orderRepository) transition(ctx context.Context, query string, args ...any) (*model.Order, bool, error) {
	order, err := scanOrder(r.storage.db(ctx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(err, "order")
	}
	return &order, true, nil
}

// CancelStalePending cancels Pending orders scheduled before the cutoff that
// no washer claimed.
func (r *orderRepository) CancelStalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	const query = `UPDATE orders o SET status=$1, updated_at=NOW()
                   WHERE o.id IN (
                       SELECT id FROM orders
                       WHERE status=$2 AND scheduled_at < $3
                       ORDER BY scheduled_at
                       LIMIT $4
                       FOR UPDATE SKIP LOCKED
                   ) AND o.status=$2
                   RETURNING ` + orderColumns

	rows, err := r.storage.db(ctx).Query(ctx, query, model.OrderStatusCancelled, model.OrderStatusPending, before, limit)
	if err != nil {
		return nil, classify(err, "order")
	}
	orders, err := collect(rows, scanOrder)
	if err != nil {
		return nil, classify(err, "order")
	}
	return orders, nil
}

// SetGatewayRef stores the gateway order reference once. It reports false
// when a reference is already present or the order is settled.
func (r *orderRepository) SetGatewayRef(ctx context.Context, id int64, gatewayOrderRef string) (bool, error) {
	const query = `UPDATE orders SET gateway_order_ref=$2, updated_at=NOW()
                   WHERE id=$1 AND gateway_order_ref IS NULL AND status NOT IN ($3, $4)`
	tag, err := r.storage.db(ctx).Exec(ctx, query, id, gatewayOrderRef, model.OrderStatusPaid, model.OrderStatusCancelled)
	if err != nil {
		return false, classify(err, "payment intent")
	}
	return tag.RowsAffected() == 1, nil
}
