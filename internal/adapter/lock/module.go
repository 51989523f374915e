package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Lonewolf123457499/CarWashApp/internal/config"
)

const (
	lockPrefix  = "carwash:lock:"
	storePrefix = "carwash:idempotency:"
	pingTimeout = 2 * time.Second
)

// Module provides the Locker and Store used by payments and HTTP idempotency.
var Module = fx.Provide(newBackend)

type backendParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

type backendResult struct {
	fx.Out

	Locker Locker
	Store  Store
}

func newBackend(p backendParams) (backendResult, error) {
	logger := p.Logger.With(slog.String("component", "lock"))
	if p.Config.RedisAddr == "" {
		logger.Info("redis is not configured, using in-process locks")
		mem := NewMemory()
		return backendResult{Locker: mem, Store: mem}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     p.Config.RedisAddr,
		Password: p.Config.RedisPassword,
		DB:       p.Config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return backendResult{}, fmt.Errorf("ping redis: %w", err)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	logger.Info("using redis locks", slog.String("addr", p.Config.RedisAddr))
	return backendResult{
		Locker: NewRedisLocker(client, lockPrefix),
		Store:  NewRedisStore(client, storePrefix),
	}, nil
}
