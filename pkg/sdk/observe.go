package surfcmp

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	objects    prometheus.Histogram
	cache      *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surfcmp",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Compare calls by operation and outcome (ok, invalid, degenerate, error).",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surfcmp",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Compare call duration in seconds.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"operation"}),
		objects: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surfcmp",
			Subsystem: "sdk",
			Name:      "objects_per_call",
			Help:      "Number of records passed to a compare call.",
			Buckets:   prometheus.ExponentialBuckets(2, 4, 8),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surfcmp",
			Subsystem: "sdk",
			Name:      "cache_total",
			Help:      "Compare result cache hits and misses.",
		}, []string{"result"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.objects); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.cache); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector, or adopts the one already registered
// under the same descriptor so several clients can share a registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("surfcmp: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("surfcmp: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// callStats describes one compare call for logging and metrics.
type callStats struct {
	op      string
	mode    Mode
	objects int
	matches int
	start   time.Time
	err     error
}

// observer provides logging and metrics for SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// cacheCounter returns the cache hit/miss counter, or nil when metrics are off.
func (o *observer) cacheCounter() *prometheus.CounterVec {
	if o == nil || o.metrics == nil {
		return nil
	}
	return o.metrics.cache
}

func (o *observer) observe(s callStats) {
	if o == nil {
		return
	}
	dur := time.Since(s.start)
	status := callStatus(s.err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(s.op, status).Inc()
		o.metrics.duration.WithLabelValues(s.op).Observe(dur.Seconds())
		o.metrics.objects.Observe(float64(s.objects))
	}

	if o.logger == nil {
		return
	}
	attrs := []any{
		slog.String("op", s.op),
		slog.String("mode", string(s.mode)),
		slog.Int("objects", s.objects),
		slog.Duration("duration", dur),
	}
	switch status {
	case "ok":
		o.logger.Debug("compare completed", append(attrs, slog.Int("matches", s.matches))...)
	case "error":
		o.logger.Error("compare failed", append(attrs, slog.Any("error", s.err))...)
	default:
		o.logger.Warn("compare rejected", append(attrs, slog.String("status", status), slog.Any("error", s.err))...)
	}
}

// callStatus maps an error to a bounded metrics label.
func callStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDegenerateVector):
		return "degenerate"
	case errors.Is(err, ErrInvalidObject), errors.Is(err, ErrTooManyObjects):
		return "invalid"
	default:
		return "error"
	}
}
