package calcwkr

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/constant"
	"exusiai.dev/forecast-next/internal/service"
)

type WorkerDeps struct {
	fx.In

	ForecastService *service.Forecast
	RedSync         *redsync.Redsync
}

// Worker periodically runs the combined model, which refreshes the report
// sinks and republishes the forecast.
type Worker struct {
	// count counts batches worker has completed so far
	count int
	mu    sync.Mutex

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// timeout bounds a single batch, lock acquisition included
	timeout time.Duration

	run  func(ctx context.Context) error
	lock func(ctx context.Context) (unlock func(), err error)
}

func Start(conf *appconfig.Config, lc fx.Lifecycle, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Str("evt.name", "worker.disabled").Msg("combined forecast worker disabled")
		return
	}

	w := &Worker{
		interval: conf.WorkerInterval,
		timeout:  conf.WorkerTimeout,
		run: func(ctx context.Context) error {
			_, err := deps.ForecastService.RunCombined(ctx)
			return err
		},
		lock: redsyncLock(deps.RedSync, conf.WorkerTimeout),
	}

	var cancel context.CancelFunc
	var done <-chan struct{}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			cancel, done = w.do()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func redsyncLock(rs *redsync.Redsync, ttl time.Duration) func(ctx context.Context) (func(), error) {
	return func(ctx context.Context) (func(), error) {
		mutex := rs.NewMutex(constant.WorkerLockName,
			redsync.WithExpiry(ttl),
			redsync.WithTries(1),
		)
		if err := mutex.LockContext(ctx); err != nil {
			return nil, err
		}
		return func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Warn().Err(err).Str("evt.name", "worker.unlock.failed").Msg("failed to release worker lock")
			}
		}, nil
	}
}

// do runs batches until the returned cancel func is called. done is closed
// once the loop has exited.
func (w *Worker) do() (cancel context.CancelFunc, done <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})

	go func() {
		defer close(finished)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			w.batch(ctx)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return cancel, finished
}

func (w *Worker) batch(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if w.lock != nil {
		unlock, err := w.lock(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Debug().Err(err).Str("evt.name", "worker.lock.skipped").Msg("another replica holds the worker lock, skipping batch")
			}
			return
		}
		defer unlock()
	}

	count := w.Count()
	log.Info().Int("count", count).Msg("worker batch started")

	if err := observeCalcDuration(func() error { return w.run(ctx) }); err != nil {
		log.Error().Err(err).Int("count", count).Msg("worker batch failed")
		return
	}

	w.mu.Lock()
	w.count++
	w.mu.Unlock()
	log.Info().Int("count", count).Msg("worker batch finished")
}

func (w *Worker) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}
