package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/metrics"
)

const publishTimeout = 10 * time.Second

// Sink delivers a single event to its destination.
type Sink interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

// NotificationDispatcher fans committed order events out to a sink through a
// bounded queue drained by a fixed pool of workers. Notify never blocks: when
// the queue is full the event is dropped.
type NotificationDispatcher struct {
	sink    Sink
	workers int
	logger  *slog.Logger

	mu     sync.RWMutex
	jobs   chan model.OrderEvent
	closed bool
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewNotificationDispatcher constructs the dispatcher worker pool.
func NewNotificationDispatcher(sink Sink, workers, queueSize int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationDispatcher{
		sink:    sink,
		workers: workers,
		logger:  logger.With(slog.String("component", "notifications")),
		jobs:    make(chan model.OrderEvent, queueSize),
	}
}

// Notify assigns the event identifier and enqueues the event.
func (d *NotificationDispatcher) Notify(event model.OrderEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.ID == "" {
		event.ID = ulid.MustNew(ulid.Timestamp(event.OccurredAt), ulid.DefaultEntropy()).String()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(event, "dispatcher stopped")
		return
	}
	select {
	case d.jobs <- event:
	default:
		d.drop(event, "queue full")
	}
}

func (d *NotificationDispatcher) drop(event model.OrderEvent, reason string) {
	metrics.Notifications.WithLabelValues(metrics.NotificationDropped).Inc()
	d.logger.Warn("order notification dropped",
		slog.String("reason", reason),
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.Int64("order_id", event.OrderID),
	)
}

// Start launches the workers. They outlive ctx and run until Stop.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil || d.closed {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop closes the queue and waits for the workers to deliver what is left.
// When ctx expires first, in-flight deliveries are cancelled.
func (d *NotificationDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	cancel := d.cancel
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if cancel != nil {
			cancel()
		}
		return nil
	case <-ctx.Done():
		if cancel != nil {
			cancel()
		}
		<-done
		return ctx.Err()
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for event := range d.jobs {
		d.deliver(ctx, event)
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, event model.OrderEvent) {
	if ctx.Err() != nil {
		d.drop(event, "dispatcher cancelled")
		return
	}
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := d.sink.Publish(publishCtx, event); err != nil {
		metrics.Notifications.WithLabelValues(metrics.NotificationFailed).Inc()
		d.logger.Error("order notification failed",
			slog.String("event_id", event.ID),
			slog.Int64("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}
	metrics.Notifications.WithLabelValues(metrics.NotificationSent).Inc()
}
