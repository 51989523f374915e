package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = time.Minute

// StaleOrderCanceller cancels Pending orders that were never claimed.
type StaleOrderCanceller interface {
	CancelStale(ctx context.Context) (int, error)
}

// StaleOrderSweeper runs StaleOrderCanceller on a cron schedule.
type StaleOrderSweeper struct {
	orders StaleOrderCanceller
	cron   *cron.Cron
	logger *slog.Logger
}

// NewStaleOrderSweeper validates schedule (standard cron syntax or
// descriptors such as "@every 5m") and registers the sweep job.
func NewStaleOrderSweeper(orders StaleOrderCanceller, schedule string, logger *slog.Logger) (*StaleOrderSweeper, error) {
	logger = logger.With(slog.String("component", "sweeper"))
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))

	s := &StaleOrderSweeper{
		orders: orders,
		logger: logger,
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Sweep cancels stale orders once.
func (s *StaleOrderSweeper) Sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	n, err := s.orders.CancelStale(ctx)
	if err != nil {
		s.logger.Error("stale order sweep failed", slog.Int("cancelled", n), slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		s.logger.Info("stale orders cancelled", slog.Int("cancelled", n))
	}
}

func (s *StaleOrderSweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *StaleOrderSweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
