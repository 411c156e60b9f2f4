package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/apiarycd/autorelease/internal/config"
	"github.com/apiarycd/autorelease/internal/credentials"
	"github.com/apiarycd/autorelease/internal/git"
	"github.com/apiarycd/autorelease/internal/manifest"
	"github.com/apiarycd/autorelease/internal/metrics"
	"github.com/apiarycd/autorelease/internal/registry"
	"github.com/apiarycd/autorelease/internal/release"
	"github.com/apiarycd/autorelease/pkg/pushfx"
	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const stopTimeout = 5 * time.Second

// services are the application objects a command works with.
type services struct {
	config   config.Config
	engine   *release.Engine
	recorder *metrics.Recorder
	tokens   *credentials.Resolver
	logger   *zap.Logger
}

func newApp(overrides config.Overrides, svc *services) *fx.App {
	return fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		validator.Module,
		pushfx.Module(),
		//
		// APP MODULES
		fx.Supply(overrides),
		config.Module(),
		//
		// BUSINESS MODULES
		git.Module(),
		manifest.Module(),
		registry.Module(),
		credentials.Module(),
		release.Module(),
		metrics.Module(),
		//
		fx.Populate(
			&svc.config,
			&svc.engine,
			&svc.recorder,
			&svc.tokens,
			&svc.logger,
		),
	)
}

// withApp starts the application, hands its services to fn and stops it
// once fn returns.
func withApp(ctx context.Context, overrides config.Overrides, fn func(context.Context, *services) error) error {
	svc := new(services)

	app := newApp(overrides, svc)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	runErr := fn(ctx, svc)

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		svc.logger.Warn("failed to stop cleanly", zap.Error(err))
	}

	return runErr
}
