// Package metrics records the per-load OpenTelemetry instruments of the
// commission board against the global meter provider.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/polisai/commission-board/pkg/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce          sync.Once
	metricsInitErr       error
	loadCounter          metric.Int64Counter
	cardCounter          metric.Int64Counter
	loadLatencyHistogram metric.Float64Histogram
)

// Load captures the fields needed to record one board load.
type Load struct {
	Outcome  domain.LoadState
	Cards    int
	Duration time.Duration
}

// RecordLoad emits counters and histograms that describe a board load.
func RecordLoad(ctx context.Context, m Load) {
	if err := ensureMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("load.outcome", string(m.Outcome)))

	loadCounter.Add(ctx, 1, attrs)
	if m.Cards > 0 {
		cardCounter.Add(ctx, int64(m.Cards))
	}
	if m.Duration > 0 {
		loadLatencyHistogram.Record(ctx, float64(m.Duration)/float64(time.Millisecond), attrs)
	}
}

func ensureMetrics() error {
	metricsOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter("commissions.board")

		loadCounter, metricsInitErr = meter.Int64Counter(
			"commissions.load.total",
			metric.WithDescription("Board loads partitioned by outcome"),
			metric.WithUnit("{count}"),
		)
		if metricsInitErr != nil {
			return
		}

		cardCounter, metricsInitErr = meter.Int64Counter(
			"commissions.load.cards",
			metric.WithDescription("Commission cards rendered"),
			metric.WithUnit("{card}"),
		)
		if metricsInitErr != nil {
			return
		}

		loadLatencyHistogram, metricsInitErr = meter.Float64Histogram(
			"commissions.load.duration_ms",
			metric.WithDescription("Observed fetch latency per load"),
			metric.WithUnit("ms"),
		)
	})

	return metricsInitErr
}
