package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/forecast-next/internal/constant"
	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

func newTestForecast(t *testing.T, reportPath string) *Forecast {
	t.Helper()
	conf := testConfig(t)
	conf.ReportPath = reportPath

	censusRepo, pollRepo := seededRepos(t)
	engine, err := NewEngine(conf, censusRepo, pollRepo)
	require.NoError(t, err)
	report, err := NewReport(conf)
	require.NoError(t, err)

	return NewForecast(engine, report, NewPublisher(conf, nil))
}

func TestNewEngineRejectsBadWeights(t *testing.T) {
	conf := testConfig(t)
	conf.EnsembleWeights = map[string]float64{"gender": 0.5, "age": 0.5}

	censusRepo, pollRepo := seededRepos(t)
	_, err := NewEngine(conf, censusRepo, pollRepo)
	assert.True(t, errors.Is(err, pgerr.ErrConfiguration))
}

func TestRunModelLens(t *testing.T) {
	s := newTestForecast(t, "")

	res, err := s.RunModel(context.Background(), forecast.LensAge.Key())
	require.NoError(t, err)
	lr := res.(*forecast.LensResult)
	require.Len(t, lr.Projections, len(constant.RegisteredVoters))
	for i, p := range lr.Projections {
		assert.Equal(t, constant.RegisteredVoters[i], p.VotesA+p.VotesB)
	}
}

func TestRunModelCombinedWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.txt")
	s := newTestForecast(t, path)

	res, err := s.RunModel(context.Background(), forecast.KeyCombined)
	require.NoError(t, err)
	combined := res.(*forecast.CombinedResult)
	assert.Equal(t, 475, combined.Summary.DelegatesA+combined.Summary.DelegatesB)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	require.Len(t, lines, len(constant.RegisteredVoters))
	assert.True(t, strings.HasPrefix(lines[0], "District 1 Hillary "), lines[0])
}

func TestRunModelCombinedSurvivesReportFailure(t *testing.T) {
	// a directory in place of the report file makes the rename fail
	path := t.TempDir()
	s := newTestForecast(t, path)

	res, err := s.RunModel(context.Background(), forecast.KeyCombined)
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestRunModelUnknownKey(t *testing.T) {
	s := newTestForecast(t, "")

	_, err := s.RunModel(context.Background(), "incomeModel")
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))
}

func TestCensusService(t *testing.T) {
	censusRepo, pollRepo := seededRepos(t)
	engine, err := NewEngine(testConfig(t), censusRepo, pollRepo)
	require.NoError(t, err)
	s := NewCensus(censusRepo, engine)

	assert.Len(t, s.Schema(), 22)
	assert.Equal(t, constant.RegisteredVoters, s.Voters())

	col, err := s.Column(context.Background(), forecast.ColHispanic)
	require.NoError(t, err)
	assert.Len(t, col, len(constant.RegisteredVoters))
	assert.InDelta(t, 0.3, col[0], 1e-12)

	_, err = s.Column(context.Background(), "income")
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))
}
