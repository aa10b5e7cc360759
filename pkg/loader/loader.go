package loader

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/polisai/commission-board/pkg/domain"
	"github.com/polisai/commission-board/pkg/telemetry/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "commissions.loader"

// Renderer is the render step of a load.
type Renderer interface {
	Render(commissions []domain.Commission) domain.LoadState
	RenderError() domain.LoadState
}

// Result is the outcome of the request step.
type Result struct {
	Commissions []domain.Commission
	Err         error
	Duration    time.Duration
}

// Loader chains one fetch to one render.
type Loader struct {
	fetch    FetchFunc
	renderer Renderer
	logger   *slog.Logger
	tracer   trace.Tracer
}

// New creates a Loader.
func New(fetch FetchFunc, renderer Renderer, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetch:    fetch,
		renderer: renderer,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// Fetch runs the request step. A nil fetch function is reported as a failure.
func (l *Loader) Fetch(ctx context.Context) Result {
	start := time.Now()
	if l.fetch == nil {
		return Result{Err: &domain.FetchError{Err: errors.New("no fetch function configured")}}
	}
	commissions, err := l.fetch(ctx)
	if err != nil && !errors.Is(err, domain.ErrFetchFailed) {
		err = &domain.FetchError{Err: err}
	}
	return Result{Commissions: commissions, Err: err, Duration: time.Since(start)}
}

// Apply runs the render step. Errors are logged and shown as the failure
// message; they are never returned.
func (l *Loader) Apply(ctx context.Context, res Result) domain.LoadState {
	var state domain.LoadState
	if res.Err != nil {
		l.logger.Error("Error fetching commissions", "error", res.Err)
		state = l.renderer.RenderError()
	} else {
		state = l.renderer.Render(res.Commissions)
		l.logger.Debug("Commissions loaded", "count", len(res.Commissions), "state", string(state))
	}

	metrics.RecordLoad(ctx, metrics.Load{
		Outcome:  state,
		Cards:    cardCount(state, res),
		Duration: res.Duration,
	})
	return state
}

// Run performs one complete load.
func (l *Loader) Run(ctx context.Context) domain.LoadState {
	ctx, span := l.tracer.Start(ctx, "commissions.load")
	defer span.End()

	res := l.Fetch(ctx)
	state := l.Apply(ctx, res)

	span.SetAttributes(
		attribute.String("commissions.state", string(state)),
		attribute.Int("commissions.count", cardCount(state, res)),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "commission fetch failed")
	}
	return state
}

func cardCount(state domain.LoadState, res Result) int {
	if state != domain.LoadPopulated {
		return 0
	}
	return len(res.Commissions)
}
