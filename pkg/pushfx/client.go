package pushfx

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

var ErrPushFailed = errors.New("failed to push metrics")

// Client pushes metric collectors to a Prometheus Pushgateway.
type Client struct {
	config Config
	http   *http.Client

	logger *zap.Logger
}

// NewClient creates a new Pushgateway client with the given configuration.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.Job == "" {
		cfg.Job = DefaultConfig().Job
	}

	return &Client{
		config: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},

		logger: logger,
	}
}

// Enabled reports whether a Pushgateway URL is configured.
func (c *Client) Enabled() bool {
	return c.config.URL != ""
}

// Push replaces the metrics of the configured job with everything gatherer
// collects. It is a no-op when the client is disabled.
func (c *Client) Push(ctx context.Context, gatherer prometheus.Gatherer) error {
	if !c.Enabled() {
		c.logger.Debug("pushgateway not configured, skipping push")
		return nil
	}

	pusher := push.New(c.config.URL, c.config.Job).
		Client(c.http).
		Gatherer(gatherer)
	for name, value := range c.config.Grouping {
		pusher = pusher.Grouping(name, value)
	}

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}

	c.logger.Debug("metrics pushed", zap.String("url", c.config.URL), zap.String("job", c.config.Job))

	return nil
}
