package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

func newTestEngine(t *testing.T, census CensusStore, polls PollStore) *Engine {
	t.Helper()
	e, err := New(census, polls, Options{
		Voters:         testVoters,
		TotalDelegates: 475,
		LensTimeout:    200 * time.Millisecond,
	})
	require.NoError(t, err)
	return e
}

func TestListAvailableModels(t *testing.T) {
	models := ListAvailableModels()
	require.Len(t, models, 5)

	keys := map[string]bool{}
	for i, m := range models {
		assert.Equal(t, i, m.Index)
		keys[m.Key] = true
	}
	for _, l := range Lenses {
		assert.True(t, keys[l.Key()], l.Key())
	}
	assert.True(t, keys[KeyCombined])
}

func TestRunUnknownKey(t *testing.T) {
	e := newTestEngine(t, &memCensus{rows: testCensus()}, &memPolls{rows: testPolls()})

	_, err := e.Run(context.Background(), "unknownKey")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))
}

func TestRunDispatchesLensKeys(t *testing.T) {
	e := newTestEngine(t, &memCensus{rows: testCensus()}, &memPolls{rows: testPolls()})

	for _, l := range Lenses {
		res, err := e.Run(context.Background(), l.Key())
		require.NoError(t, err, l.Key())
		lr, ok := res.(*LensResult)
		require.True(t, ok)
		assert.Equal(t, l, lr.Lens)
		assert.Equal(t, l.Key(), lr.ModelKey())
		assert.Len(t, lr.Projections, len(testVoters))
	}
}

func TestRunCombined(t *testing.T) {
	var observed []Lens
	obs := make(chan Lens, len(Lenses))
	e, err := New(&memCensus{rows: testCensus()}, &memPolls{rows: testPolls()}, Options{
		Voters:         testVoters,
		TotalDelegates: 475,
		Observe: func(l Lens, _ time.Duration, err error) {
			assert.NoError(t, err)
			obs <- l
		},
	})
	require.NoError(t, err)

	res, err := e.Run(context.Background(), KeyCombined)
	require.NoError(t, err)
	close(obs)
	for l := range obs {
		observed = append(observed, l)
	}
	assert.ElementsMatch(t, Lenses, observed)

	combined, ok := res.(*CombinedResult)
	require.True(t, ok)
	assert.NotEmpty(t, combined.RunID)
	assert.Len(t, combined.Projections, len(testVoters))
	assert.Len(t, combined.Lenses, len(Lenses))
	assert.Equal(t, 475, combined.Summary.DelegatesA+combined.Summary.DelegatesB)
	assert.Equal(t, 100, combined.Summary.AvgA+combined.Summary.AvgB)

	// every combined district stays within one rounding step of its voter count
	for i, p := range combined.Projections {
		assert.InDelta(t, testVoters[i], p.VotesA+p.VotesB, 1)
	}
}

func TestRunCombinedFailsFastOnStoreError(t *testing.T) {
	e := newTestEngine(t,
		&memCensus{rows: testCensus()},
		&memPolls{err: errors.New("connection refused")},
	)

	res, err := e.RunCombined(context.Background())
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgerr.ErrDataUnavailable), err.Error())
}

func TestRunLensTimesOut(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	census := &memCensus{rows: testCensus(), block: block}
	e := newTestEngine(t, census, &memPolls{rows: testPolls()})

	start := time.Now()
	_, err := e.RunCombined(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgerr.ErrDataUnavailable), err.Error())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunLensPassesValidationErrorsThrough(t *testing.T) {
	e := newTestEngine(t,
		&memCensus{err: pgerr.ErrInvalidInput.Msg("unknown census column")},
		&memPolls{rows: testPolls()},
	)

	_, err := e.RunLens(context.Background(), LensGender)
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))
}

func TestNewRejectsInvalidTables(t *testing.T) {
	_, err := New(&memCensus{}, &memPolls{}, Options{
		Voters:  testVoters,
		Weights: Weights{LensGender: 1},
	})
	assert.True(t, errors.Is(err, pgerr.ErrConfiguration))

	_, err = New(&memCensus{}, &memPolls{}, Options{Voters: []int{10, 0}})
	assert.True(t, errors.Is(err, pgerr.ErrConfiguration))

	_, err = New(&memCensus{}, &memPolls{}, Options{})
	assert.True(t, errors.Is(err, pgerr.ErrConfiguration))
}

func TestVotersIsACopy(t *testing.T) {
	e := newTestEngine(t, &memCensus{}, &memPolls{})
	v := e.Voters()
	v[0] = 0
	assert.Equal(t, testVoters[0], e.Voters()[0])
}
