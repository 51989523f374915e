package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Lonewolf123457499/CarWashApp/internal/config"
)

// Module provides the notification Sink selected by configuration.
var Module = fx.Provide(newSink)

type sinkParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newSink(p sinkParams) Sink {
	var sink Sink
	if len(p.Config.KafkaBrokers) == 0 {
		sink = NewLogSink(p.Logger)
	} else {
		p.Logger.Info("publishing notifications to kafka",
			slog.Any("brokers", p.Config.KafkaBrokers),
			slog.String("topic", p.Config.KafkaTopic),
		)
		sink = NewKafkaSink(p.Config.KafkaBrokers, p.Config.KafkaTopic)
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return sink.Close()
		},
	})
	return sink
}
