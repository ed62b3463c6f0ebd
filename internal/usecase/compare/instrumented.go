package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/surfcmp/internal/domain"
	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
	"github.com/kailas-cloud/surfcmp/internal/metrics"
)

// InstrumentedComparer wraps a Comparer with Prometheus metrics and logging.
type InstrumentedComparer struct {
	inner  Comparer
	logger *zap.Logger
}

// NewInstrumentedComparer wraps inner. Metrics must be registered via metrics.Register.
func NewInstrumentedComparer(inner Comparer, logger *zap.Logger) *InstrumentedComparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedComparer{inner: inner, logger: logger}
}

// CompareDetailed delegates to the inner comparer and records the outcome.
func (c *InstrumentedComparer) CompareDetailed(
	ctx context.Context, objs []object.Object, mode tolerance.Mode,
) (match.Report, error) {
	label := mode.Label()
	start := time.Now()

	report, err := c.inner.CompareDetailed(ctx, objs, mode)

	duration := time.Since(start)
	metrics.CompareDuration.WithLabelValues(label).Observe(duration.Seconds())

	if err != nil {
		status := errorStatus(err)
		metrics.CompareRequestsTotal.WithLabelValues(label, status).Inc()
		fields := []zap.Field{
			zap.String("mode", label),
			zap.Int("objects", len(objs)),
			zap.String("status", status),
			zap.Duration("duration", duration),
			zap.Error(err),
		}
		if status == "error" {
			c.logger.Error("Compare failed", fields...)
		} else {
			c.logger.Warn("Compare rejected", fields...)
		}
		return match.Report{}, fmt.Errorf("compare: %w", err)
	}

	metrics.CompareRequestsTotal.WithLabelValues(label, "ok").Inc()
	for category, n := range report.Pairs {
		metrics.ComparePairsTotal.WithLabelValues(string(category)).Add(float64(n))
	}
	for category, byClass := range report.Matches.Counts() {
		for class, n := range byClass {
			metrics.CompareMatchesTotal.WithLabelValues(string(category), class.String()).Add(float64(n))
		}
	}

	c.logger.Debug("Compare request completed",
		zap.String("mode", label),
		zap.Int("objects", len(objs)),
		zap.Int("pairs", report.TotalPairs()),
		zap.Int("matches", len(report.Matches)),
		zap.Duration("duration", duration),
	)

	return report, nil
}

// errorStatus maps an error to a bounded metrics label.
func errorStatus(err error) string {
	switch {
	case errors.Is(err, domain.ErrDegenerateVector):
		return "degenerate"
	case errors.Is(err, domain.ErrInvalidObject), errors.Is(err, domain.ErrTooManyObjects):
		return "invalid"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
