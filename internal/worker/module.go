package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/notify"
	"github.com/Lonewolf123457499/CarWashApp/internal/config"
	"github.com/Lonewolf123457499/CarWashApp/internal/usecase"
)

// Module provides the background workers. Their lifecycle is driven by app.
var Module = fx.Provide(
	newDispatcher,
	func(d *NotificationDispatcher) usecase.Notifier { return d },
	newSweeper,
)

type dispatcherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Sink   notify.Sink
}

func newDispatcher(p dispatcherParams) *NotificationDispatcher {
	return NewNotificationDispatcher(p.Sink, p.Config.NotifyWorkers, p.Config.NotifyQueueSize, p.Logger)
}

type sweeperParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Orders *usecase.OrderUseCase
}

func newSweeper(p sweeperParams) (*StaleOrderSweeper, error) {
	return NewStaleOrderSweeper(p.Orders, p.Config.SweepSchedule, p.Logger)
}
