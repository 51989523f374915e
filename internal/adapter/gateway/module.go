package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Lonewolf123457499/CarWashApp/internal/config"
)

// Module exposes gateway client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GatewayURL, p.Config.GatewayKeyID, p.Config.GatewayKeySecret, p.Logger)
}
