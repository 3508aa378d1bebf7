// Package testentry provides seeded in-memory stores and configuration for tests.
package testentry

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/app/appcontext"
	"exusiai.dev/forecast-next/internal/constant"
	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/infra"
	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/repo"
)

// Config returns the default configuration with file and network sinks disabled.
func Config() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			StoreDriver:               infra.DriverSQLite,
			StoreDSN:                  ":memory:",
			TrustedProxies:            []string{"127.0.0.1"},
			HTTPServerShutdownTimeout: time.Second,
			EnsembleWeights:           map[string]float64{"gender": 0.2, "age": 0.2, "race": 0.3, "tenure": 0.3},
			TotalDelegates:            475,
			CandidateAName:            "Hillary",
			CandidateBName:            "Bernie",
			LensTimeout:               5 * time.Second,
			NatsSubject:               "FORECAST.combined",
			PollsterState:             "CA",
			PollsterAfter:             "2016-04-20",
			PollsterContest:           "2016 California Democratic Presidential Primary",
			PollsterChoiceA:           "Clinton",
			PollsterChoiceB:           "Sanders",
			PollsterLimit:             3,
			PollsterTimeout:           5 * time.Second,
			PollCacheTTL:              time.Minute,
			WorkerInterval:            time.Minute,
			WorkerTimeout:             time.Minute,
		},
		AppContext: appcontext.Declare(appcontext.EnvCLI),
	}
}

// QuietLogs routes the global logger into t for the duration of the test.
func QuietLogs(t testing.TB) {
	prev := log.Logger
	log.Logger = log.Logger.Output(zerolog.NewTestWriter(t))
	t.Cleanup(func() { log.Logger = prev })
}

// Polls is a complete crosstab covering every subgroup of every lens.
func Polls() []*model.Poll {
	return []*model.Poll{
		{Population: forecast.PopMale, CandidateA: 44, CandidateB: 49, Undecided: 7},
		{Population: forecast.PopFemale, CandidateA: 55, CandidateB: 38, Undecided: 7},
		{Population: forecast.PopAge18To29, CandidateA: 24, CandidateB: 71, Undecided: 5},
		{Population: forecast.PopAge30To39, CandidateA: 40, CandidateB: 52, Undecided: 8},
		{Population: forecast.PopAge40To49, CandidateA: 51, CandidateB: 42, Undecided: 7},
		{Population: forecast.PopAge50To64, CandidateA: 58, CandidateB: 35, Undecided: 7},
		{Population: forecast.PopAge65Plus, CandidateA: 64, CandidateB: 27, Undecided: 9},
		{Population: forecast.PopWhite, CandidateA: 45, CandidateB: 49, Undecided: 6},
		{Population: forecast.PopLatino, CandidateA: 55, CandidateB: 38, Undecided: 7},
		{Population: forecast.PopBlack, CandidateA: 67, CandidateB: 27, Undecided: 6},
		{Population: forecast.PopOther, CandidateA: 52, CandidateB: 41, Undecided: 7},
		{Population: forecast.PopHomeowner, CandidateA: 53, CandidateB: 40, Undecided: 7},
		{Population: forecast.PopRenter, CandidateA: 45, CandidateB: 48, Undecided: 7},
	}
}

// Census returns one synthetic census row per registered district.
func Census() []*model.Census {
	census := make([]*model.Census, len(constant.RegisteredVoters))
	for i := range census {
		f := float64(i%5) / 50
		census[i] = &model.Census{
			DistrictID:     i + 1,
			Male:           0.48 + f,
			Female:         0.52 - f,
			Range1519:      1200,
			Range2024:      1800 + 20*float64(i),
			Range2534:      3100,
			Range3544:      2900,
			Range4554:      2600,
			Range5559:      1100,
			Range6064:      900,
			Range6574:      1400,
			Range7584:      800,
			Range85Plus:    300,
			White:          0.55,
			Black:          0.08,
			Indian:         0.01,
			Asian:          0.12,
			Hawaiian:       0.005,
			Other:          0.12,
			TwoPlus:        0.045,
			Hispanic:       0.3 + f,
			OwnerOccupied:  0.6 - f,
			RenterOccupied: 0.4 + f,
		}
	}
	return census
}

// Store opens an in-memory sqlite store seeded with Census and Polls.
func Store(t testing.TB) *bun.DB {
	t.Helper()
	ctx := context.Background()

	db, err := infra.OpenStore(infra.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	censusRepo := repo.NewCensus(db)
	pollRepo := repo.NewPoll(db)
	require.NoError(t, censusRepo.CreateTable(ctx))
	require.NoError(t, pollRepo.CreateTable(ctx))
	require.NoError(t, censusRepo.ReplaceAll(ctx, Census()))
	require.NoError(t, pollRepo.ReplaceAll(ctx, Polls()))

	return db
}
