package notify

import (
	"context"
	"log/slog"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// Sink delivers lifecycle events to customers and washers.
type Sink interface {
	Publish(ctx context.Context, event model.OrderEvent) error
	Close() error
}

// LogSink writes events to the application log. It is used when no broker
// is configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink logging through logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With(slog.String("component", "notify"))}
}

func (s *LogSink) Publish(ctx context.Context, event model.OrderEvent) error {
	s.logger.InfoContext(ctx, "order notification",
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.Int64("order_id", event.OrderID),
		slog.Int64("customer_id", event.CustomerID),
		slog.Int64("washer_id", event.WasherID),
	)
	return nil
}

func (s *LogSink) Close() error { return nil }
