package repo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })
	return db
}

func seedCensus(t *testing.T, r *Census) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, r.CreateTable(ctx))
	require.NoError(t, r.ReplaceAll(ctx, []*model.Census{
		{DistrictID: 2, Male: 0.45, Female: 0.55, TwoPlus: 0.04, OwnerOccupied: 0.7, RenterOccupied: 0.3},
		{DistrictID: 1, Male: 0.49, Female: 0.51, TwoPlus: 0.02, OwnerOccupied: 0.6, RenterOccupied: 0.4},
	}))
}

func TestCensusSelectColumnsInDistrictOrder(t *testing.T) {
	r := NewCensus(openTestDB(t))
	seedCensus(t, r)

	rows, err := r.SelectColumns(context.Background(), []string{forecast.ColMale, forecast.ColTwoPlus})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, forecast.CensusRow{forecast.ColMale: 0.49, forecast.ColTwoPlus: 0.02}, rows[0])
	assert.Equal(t, forecast.CensusRow{forecast.ColMale: 0.45, forecast.ColTwoPlus: 0.04}, rows[1])

	col, err := r.SelectColumn(context.Background(), forecast.ColOwnerOccupied)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.6, 0.7}, col)

	n, err := r.CountDistricts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCensusRejectsUnknownColumn(t *testing.T) {
	r := NewCensus(openTestDB(t))
	seedCensus(t, r)

	_, err := r.SelectColumn(context.Background(), "male; DROP TABLE census")
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))
}

func TestCensusFieldsCoverCatalog(t *testing.T) {
	for _, entry := range forecast.ListCensusSchema() {
		_, ok := censusFields[entry.Key]
		assert.True(t, ok, entry.Key)
	}
	assert.Len(t, censusFields, len(forecast.ListCensusSchema()))
}

func TestPollSelectByPopulations(t *testing.T) {
	ctx := context.Background()
	r := NewPoll(openTestDB(t))
	require.NoError(t, r.CreateTable(ctx))
	require.NoError(t, r.ReplaceAll(ctx, []*model.Poll{
		{Population: forecast.PopMale, CandidateA: 44, CandidateB: 49, Undecided: 7},
		{Population: forecast.PopFemale, CandidateA: 55, CandidateB: 38, Undecided: 7},
		{Population: forecast.PopHomeowner, CandidateA: 53, CandidateB: 40, Undecided: 7},
	}))

	rows, err := r.SelectByPopulations(ctx, []string{forecast.PopMale, forecast.PopFemale, forecast.PopAge18To29})
	require.NoError(t, err)
	assert.Equal(t, []forecast.PollRow{
		{Population: forecast.PopMale, CandidateAPercent: 44, CandidateBPercent: 49, UndecidedPercent: 7},
		{Population: forecast.PopFemale, CandidateAPercent: 55, CandidateBPercent: 38, UndecidedPercent: 7},
	}, rows)

	// replacing drops the previous rows
	require.NoError(t, r.ReplaceAll(ctx, []*model.Poll{
		{Population: forecast.PopRenter, CandidateA: 45, CandidateB: 48, Undecided: 7},
	}))
	all, err := r.GetPolls(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, forecast.PopRenter, all[0].Population)
}
