package pushfx

import (
	"context"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"pushfx",
		logger.WithNamedLogger("pushfx"),
		fx.Provide(NewClient),
		fx.Invoke(func(lc fx.Lifecycle, client *Client, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Debug("starting pushfx module", zap.Bool("enabled", client.Enabled()))
					return nil
				},
				OnStop: func(_ context.Context) error {
					client.http.CloseIdleConnections()
					return nil
				},
			})
		}),
	)
}
