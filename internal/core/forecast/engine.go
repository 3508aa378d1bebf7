package forecast

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

const DefaultLensTimeout = 10 * time.Second

// CensusStore reads census columns. Rows are returned in district order.
type CensusStore interface {
	SelectColumns(ctx context.Context, keys []string) ([]CensusRow, error)
}

// PollStore reads the poll rows of the given populations.
type PollStore interface {
	SelectByPopulations(ctx context.Context, populations []string) ([]PollRow, error)
}

type Options struct {
	// Voters is the registered-voter count of every district, in district order.
	Voters         []int
	Weights        Weights
	TotalDelegates int

	// LensTimeout bounds the data fetches of a single lens. Zero means DefaultLensTimeout.
	LensTimeout time.Duration

	// Observe, when set, is called once per finished lens computation.
	Observe func(lens Lens, took time.Duration, err error)
}

type Engine struct {
	census CensusStore
	polls  PollStore
	opts   Options
}

// Result is either a *LensResult or a *CombinedResult.
type Result interface {
	ModelKey() string
}

type LensResult struct {
	Key         string               `json:"key"`
	Lens        Lens                 `json:"-"`
	Projections []DistrictProjection `json:"projections"`
}

func (r *LensResult) ModelKey() string { return r.Key }

type CombinedResult struct {
	RunID       string                          `json:"runId"`
	Key         string                          `json:"key"`
	Weights     map[string]float64              `json:"weights"`
	Projections []DistrictProjection            `json:"projections"`
	Summary     StatewideSummary                `json:"summary"`
	Lenses      map[string][]DistrictProjection `json:"lenses"`
	GeneratedAt time.Time                       `json:"generatedAt"`
}

func (r *CombinedResult) ModelKey() string { return r.Key }

// New validates the static tables in opts and returns an Engine. An invalid
// weight table is reported as a configuration error.
func New(census CensusStore, polls PollStore, opts Options) (*Engine, error) {
	if opts.Weights == nil {
		opts.Weights = DefaultWeights()
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Voters) == 0 {
		return nil, pgerr.ErrConfiguration.Msg("no districts configured")
	}
	for i, v := range opts.Voters {
		if v <= 0 {
			return nil, pgerr.ErrConfiguration.Msg("district %d has a non-positive registered voter count %d", i+1, v)
		}
	}
	if opts.TotalDelegates < 0 {
		return nil, pgerr.ErrConfiguration.Msg("negative delegate total %d", opts.TotalDelegates)
	}
	if opts.LensTimeout <= 0 {
		opts.LensTimeout = DefaultLensTimeout
	}
	return &Engine{census: census, polls: polls, opts: opts}, nil
}

func (e *Engine) Voters() []int {
	v := make([]int, len(e.opts.Voters))
	copy(v, e.opts.Voters)
	return v
}

// Run dispatches a model key to its lens or to the combined model.
func (e *Engine) Run(ctx context.Context, key string) (Result, error) {
	if key == KeyCombined {
		return e.RunCombined(ctx)
	}
	for _, l := range Lenses {
		if l.Key() == key {
			return e.RunLens(ctx, l)
		}
	}
	return nil, pgerr.ErrInvalidInput.Msg("unknown model key %q", key)
}

// RunLens fetches the lens's poll and census rows concurrently and computes
// its projection once both have arrived.
func (e *Engine) RunLens(ctx context.Context, l Lens) (res *LensResult, err error) {
	axis, ok := AxisOf(l)
	if !ok {
		return nil, pgerr.ErrInvalidInput.Msg("unknown lens %d", int(l))
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "forecast.lens")
	span.SetAttributes(attribute.String("forecast.lens", l.String()))
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if e.opts.Observe != nil {
			e.opts.Observe(l, time.Since(start), err)
		}
	}()

	census, polls, err := e.fetch(ctx, axis)
	if err != nil {
		return nil, err
	}

	projections, err := ComputeLens(axis, census, polls, e.opts.Voters)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("evt.name", "forecast.lens").
		Str("lens", l.String()).
		Dur("took", time.Since(start)).
		Msg("lens computed")

	return &LensResult{
		Key:         l.Key(),
		Lens:        l,
		Projections: projections,
	}, nil
}

// RunCombined runs every lens concurrently and only combines once all of them
// succeeded. The first lens failure cancels the others and aborts the run.
func (e *Engine) RunCombined(ctx context.Context) (*CombinedResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "forecast.combined")
	defer span.End()

	results := make([]*LensResult, len(Lenses))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, l := range Lenses {
		i, l := i, l
		eg.Go(func() error {
			r, err := e.RunLens(egCtx, l)
			if err != nil {
				return errors.WithMessagef(err, "%s lens", l)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	byLens := make(map[Lens][]DistrictProjection, len(Lenses))
	byKey := make(map[string][]DistrictProjection, len(Lenses))
	for _, r := range results {
		byLens[r.Lens] = r.Projections
		byKey[r.Key] = r.Projections
	}

	combined, err := Combine(e.opts.Weights, byLens)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(combined, e.opts.TotalDelegates)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]float64, len(e.opts.Weights))
	for l, w := range e.opts.Weights {
		weights[l.String()] = w
	}

	return &CombinedResult{
		RunID:       ulid.Make().String(),
		Key:         KeyCombined,
		Weights:     weights,
		Projections: combined,
		Summary:     summary,
		Lenses:      byKey,
		GeneratedAt: time.Now(),
	}, nil
}

// fetch joins the two independent reads of a lens. Both run concurrently under
// the lens timeout; a read that outlives it fails the lens even when the store
// ignores context cancellation.
func (e *Engine) fetch(ctx context.Context, axis Axis) ([]CensusRow, []PollRow, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.LensTimeout)
	defer cancel()

	var (
		census []CensusRow
		polls  []PollRow
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		rows, err := await(egCtx, "census", func(ctx context.Context) ([]CensusRow, error) {
			return e.census.SelectColumns(ctx, axis.CensusColumns)
		})
		census = rows
		return err
	})
	eg.Go(func() error {
		rows, err := await(egCtx, "polls", func(ctx context.Context) ([]PollRow, error) {
			return e.polls.SelectByPopulations(ctx, axis.Subgroups)
		})
		polls = rows
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return census, polls, nil
}

func await[T any](ctx context.Context, source string, fn func(ctx context.Context) (T, error)) (T, error) {
	type outcome struct {
		v   T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn(ctx)
		ch <- outcome{v, err}
	}()

	var zero T
	select {
	case <-ctx.Done():
		return zero, pgerr.ErrDataUnavailable.Msg("%s fetch did not complete: %s", source, ctx.Err())
	case o := <-ch:
		if o.err != nil {
			return zero, unavailable(source, o.err)
		}
		return o.v, nil
	}
}

// unavailable keeps validation errors as they are and turns anything else
// into a data-unavailable error.
func unavailable(source string, err error) error {
	if errors.Is(err, pgerr.ErrInvalidInput) || errors.Is(err, pgerr.ErrDataUnavailable) {
		return err
	}
	return pgerr.ErrDataUnavailable.Msg("%s fetch failed: %s", source, err)
}
