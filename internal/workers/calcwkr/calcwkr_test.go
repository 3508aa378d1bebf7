package calcwkr

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestWorkerRunsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	var runs atomic.Int32
	w := &Worker{
		interval: 5 * time.Millisecond,
		timeout:  time.Second,
		run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}

	cancel, done := w.do()
	assert.Eventually(t, func() bool { return w.Count() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, int(runs.Load()), 3)
	assert.Equal(t, int(runs.Load()), w.Count())
}

func TestWorkerSkipsBatchWithoutLock(t *testing.T) {
	var runs atomic.Int32
	w := &Worker{
		interval: time.Hour,
		timeout:  time.Second,
		run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
		lock: func(ctx context.Context) (func(), error) {
			return nil, errors.New("lock already taken")
		},
	}

	w.batch(context.Background())
	assert.Zero(t, runs.Load())
	assert.Zero(t, w.Count())
}

func TestWorkerFailedBatchIsNotCounted(t *testing.T) {
	var unlocked atomic.Bool
	w := &Worker{
		interval: time.Hour,
		timeout:  time.Second,
		run: func(ctx context.Context) error {
			return errors.New("census store unavailable")
		},
		lock: func(ctx context.Context) (func(), error) {
			return func() { unlocked.Store(true) }, nil
		},
	}

	w.batch(context.Background())
	assert.Zero(t, w.Count())
	assert.True(t, unlocked.Load())
}
