package manifest

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"manifest",
		logger.WithNamedLogger("manifest"),
		fx.Provide(NewService),
	)
}
