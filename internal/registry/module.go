package registry

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"registry",
		logger.WithNamedLogger("registry"),
		fx.Provide(NewExecRunner, fx.Private),
		fx.Provide(NewClient),
	)
}
