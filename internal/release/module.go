package release

import (
	"github.com/apiarycd/autorelease/internal/credentials"
	"github.com/apiarycd/autorelease/internal/manifest"
	"github.com/apiarycd/autorelease/internal/registry"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"release",
		logger.WithNamedLogger("release"),
		fx.Provide(NewGitAdapter, fx.Private),
		fx.Provide(func(c *registry.Client) Registry { return c }, fx.Private),
		fx.Provide(func(s *manifest.Service) Manifest { return s }, fx.Private),
		fx.Provide(func(r *credentials.Resolver) TokenSource { return r }, fx.Private),
		fx.Provide(NewEngine),
	)
}
