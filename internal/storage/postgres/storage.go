package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"

	defaultRetryBackoff = 50 * time.Millisecond
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type txKey struct{}

var errUnavailable = domainErrors.New(domainErrors.ErrUnavailable, "storage temporarily unavailable")

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool         pgxPool
	logger       *slog.Logger
	readRetries  int
	retryBackoff time.Duration
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type vehicleRepository struct {
	storage *Storage
}

type receiptRepository struct {
	storage *Storage
}

type ratingRepository struct {
	storage *Storage
}

// New creates storage with schema initialization. Read-only queries that fail
// with a transient error are retried up to readRetries times.
func New(ctx context.Context, dsn string, readRetries int, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if readRetries < 0 {
		readRetries = 0
	}
	storage := &Storage{
		pool:         pool,
		logger:       logger.With(slog.String("component", "storage")),
		readRetries:  readRetries,
		retryBackoff: defaultRetryBackoff,
	}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Vehicles() repository.VehicleRepository {
	return &vehicleRepository{storage: s}
}

func (s *Storage) Receipts() repository.ReceiptRepository {
	return &receiptRepository{storage: s}
}

func (s *Storage) Ratings() repository.RatingRepository {
	return &ratingRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS wash_packages (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS addons (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS vehicles (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            make TEXT NOT NULL,
            model TEXT NOT NULL,
            license_plate TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            deleted_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            washer_id BIGINT REFERENCES users(id),
            vehicle_id BIGINT NOT NULL REFERENCES vehicles(id),
            package_id BIGINT NOT NULL REFERENCES wash_packages(id),
            scheduled_at TIMESTAMPTZ NOT NULL,
            completed_at TIMESTAMPTZ,
            status TEXT NOT NULL,
            total NUMERIC(12,2) NOT NULL CHECK (total >= 0),
            image_ref TEXT NOT NULL DEFAULT '',
            gateway_order_ref TEXT UNIQUE,
            gateway_payment_ref TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_addons (
            order_id BIGINT NOT NULL REFERENCES orders(id),
            addon_id BIGINT NOT NULL REFERENCES addons(id),
            position INT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            PRIMARY KEY (order_id, addon_id)
        )`,
		`CREATE TABLE IF NOT EXISTS receipts (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            receipt_number TEXT UNIQUE NOT NULL,
            details TEXT NOT NULL,
            total NUMERIC(12,2) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS ratings (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            customer_id BIGINT NOT NULL REFERENCES users(id),
            washer_id BIGINT NOT NULL REFERENCES users(id),
            stars INT NOT NULL CHECK (stars BETWEEN 0 AND 5),
            comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS active BOOLEAN NOT NULL DEFAULT TRUE`,
		`ALTER TABLE addons ADD COLUMN IF NOT EXISTS active BOOLEAN NOT NULL DEFAULT TRUE`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_scheduled ON orders(status, scheduled_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, scheduled_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_washer ON orders(washer_id, scheduled_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_vehicles_customer ON vehicles(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes fn inside a transaction carried by the context
// passed to fn. Nested calls join the outer transaction.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return classify(err, "transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		} else if err = tx.Commit(ctx); err != nil {
			err = classify(err, "transaction")
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}

// db returns the transaction bound to ctx, or the pool.
func (s *Storage) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// read runs a read-only query, retrying transient failures with a linear
// backoff. Queries inside a transaction are never retried.
func (s *Storage) read(ctx context.Context, fn func(db querier) error) error {
	db := s.db(ctx)
	_, inTx := ctx.Value(txKey{}).(pgx.Tx)

	for attempt := 0; ; attempt++ {
		err := fn(db)
		if err == nil || inTx || attempt >= s.readRetries || !errors.Is(err, domainErrors.ErrUnavailable) {
			return err
		}

		s.logger.WarnContext(ctx, "retrying read", slog.Int("attempt", attempt+1), slog.Any("error", err))
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt+1) * s.retryBackoff):
		}
	}
}

// classify maps driver errors onto domain error kinds. what names the entity
// for caller-facing messages.
func classify(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.Newf(domainErrors.ErrNotFound, "%s not found", what)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domainErrors.Newf(domainErrors.ErrConflict, "%s already exists", what)
		case pgForeignKeyViolation:
			return domainErrors.Newf(domainErrors.ErrNotFound, "%s references a missing record", what)
		case pgCheckViolation:
			return domainErrors.Newf(domainErrors.ErrInvalidInput, "%s violates a constraint", what)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.SafeToRetry(err) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", errUnavailable, err)
	}

	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
