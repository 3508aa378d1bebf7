package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"exusiai.dev/forecast-next/internal/constant"
	"exusiai.dev/forecast-next/internal/infra"
	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/repo"
)

func writeLegacy[T any](t *testing.T, path string, rows []*T) {
	t.Helper()
	ctx := context.Background()

	db, err := infra.OpenStore(infra.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.NewCreateTable().Model((*T)(nil)).Exec(ctx)
	require.NoError(t, err)
	if len(rows) > 0 {
		_, err = db.NewInsert().Model(&rows).Exec(ctx)
		require.NoError(t, err)
	}
}

func newDeps(t *testing.T) (CommandDeps, *bun.DB) {
	t.Helper()
	db, err := infra.OpenStore(infra.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return CommandDeps{
		CensusRepo: repo.NewCensus(db),
		PollRepo:   repo.NewPoll(db),
	}, db
}

func TestImportLegacyFiles(t *testing.T) {
	dir := t.TempDir()
	censusPath := filepath.Join(dir, "census.db")
	pollsPath := filepath.Join(dir, "polls.db")

	census := make([]*model.LegacyCensus, len(constant.RegisteredVoters))
	for i := range census {
		census[i] = &model.LegacyCensus{Male: 0.49, Female: 0.51, TwoPlus: float64(i) / 1000, OwnerOccupied: 0.6, RenterOccupied: 0.4}
	}
	writeLegacy(t, censusPath, census)
	writeLegacy(t, pollsPath, []*model.LegacyPoll{
		{Population: "male", Hillary: 44, Bernie: 49, Undecided: 7},
		{Population: "female", Hillary: 55, Bernie: 38, Undecided: 7},
	})

	deps, _ := newDeps(t)
	ctx := context.Background()
	require.NoError(t, run(ctx, deps, censusPath, pollsPath))

	n, err := deps.CensusRepo.CountDistricts(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(constant.RegisteredVoters), n)

	twoPlus, err := deps.CensusRepo.SelectColumn(ctx, "twoPlus")
	require.NoError(t, err)
	assert.Equal(t, 0.0, twoPlus[0])
	assert.Equal(t, 0.052, twoPlus[52])

	polls, err := deps.PollRepo.GetPolls(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 2)
	assert.Equal(t, 55.0, polls[1].CandidateA)
	assert.Equal(t, 38.0, polls[1].CandidateB)
}

func TestImportRejectsShortCensus(t *testing.T) {
	dir := t.TempDir()
	censusPath := filepath.Join(dir, "census.db")
	pollsPath := filepath.Join(dir, "polls.db")

	writeLegacy(t, censusPath, []*model.LegacyCensus{{Male: 0.5, Female: 0.5}})
	writeLegacy(t, pollsPath, []*model.LegacyPoll{})

	deps, _ := newDeps(t)
	err := run(context.Background(), deps, censusPath, pollsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 53")
}
