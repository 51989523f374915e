package di

import (
	"go.uber.org/fx"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/gateway"
	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/lock"
	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/notify"
	"github.com/Lonewolf123457499/CarWashApp/internal/app"
	"github.com/Lonewolf123457499/CarWashApp/internal/config"
	"github.com/Lonewolf123457499/CarWashApp/internal/logger"
	"github.com/Lonewolf123457499/CarWashApp/internal/pkg/auth"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/handlers"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/router"
	"github.com/Lonewolf123457499/CarWashApp/internal/storage/postgres"
	"github.com/Lonewolf123457499/CarWashApp/internal/usecase"
	"github.com/Lonewolf123457499/CarWashApp/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		gateway.Module,
		lock.Module,
		notify.Module,
		worker.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
