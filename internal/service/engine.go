package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/constant"
	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/pkg/observability"
	"exusiai.dev/forecast-next/internal/repo"
)

// NewEngine builds the forecast engine over the census and poll repositories.
// An invalid ensemble weight table fails startup.
func NewEngine(conf *appconfig.Config, censusRepo *repo.Census, pollRepo *repo.Poll) (*forecast.Engine, error) {
	weights, err := forecast.ParseWeights(conf.EnsembleWeights)
	if err != nil {
		return nil, err
	}

	engine, err := forecast.New(censusRepo, pollRepo, forecast.Options{
		Voters:         constant.RegisteredVoters,
		Weights:        weights,
		TotalDelegates: conf.TotalDelegates,
		LensTimeout:    conf.LensTimeout,
		Observe: func(l forecast.Lens, d time.Duration, err error) {
			observability.LensDuration.
				WithLabelValues(l.String(), observability.Result(err)).
				Observe(d.Seconds())
		},
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("evt.name", "forecast.engine.ready").
		Str("weights", weights.String()).
		Int("districts", len(constant.RegisteredVoters)).
		Int("totalDelegates", conf.TotalDelegates).
		Msg("forecast engine ready")

	return engine, nil
}
