package metrics

import (
	"context"
	"time"

	"github.com/apiarycd/autorelease/internal/release"
	"github.com/apiarycd/autorelease/pkg/pushfx"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	outcomeFailed = "failed"
	namespace     = "autorelease"
)

// Recorder reports run outcomes to the Pushgateway.
type Recorder struct {
	registry *prometheus.Registry

	lastRun   prometheus.Gauge
	runs      *prometheus.CounterVec
	published *prometheus.GaugeVec

	client *pushfx.Client
	logger *zap.Logger

	now func() time.Time
}

func NewRecorder(client *pushfx.Client, logger *zap.Logger) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last release run.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Release runs by outcome and skip reason.",
		}, []string{"outcome", "reason"}),
		published: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "published_info",
			Help:      "Version published by the last successful run.",
		}, []string{"package", "version"}),

		client: client,
		logger: logger,

		now: time.Now,
	}

	r.registry.MustRegister(r.lastRun, r.runs, r.published)

	return r
}

// Observe records the result of one run and pushes it. Push failures are
// logged and swallowed.
func (r *Recorder) Observe(ctx context.Context, outcome *release.Outcome, runErr error) {
	r.lastRun.Set(float64(r.now().Unix()))

	switch {
	case runErr != nil || outcome == nil:
		r.runs.WithLabelValues(outcomeFailed, "").Inc()
	case outcome.Published():
		r.runs.WithLabelValues(string(outcome.Status), "").Inc()
		r.published.Reset()
		r.published.WithLabelValues(outcome.Package, outcome.Version).Set(1)
	default:
		r.runs.WithLabelValues(string(outcome.Status), string(outcome.Reason)).Inc()
	}

	if !r.client.Enabled() {
		return
	}

	if err := r.client.Push(ctx, r.registry); err != nil {
		r.logger.Warn("failed to push run metrics", zap.Error(err))
	}
}
