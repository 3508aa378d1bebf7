package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/pkg/observability"
)

type Forecast struct {
	Engine    *forecast.Engine
	Report    *Report
	Publisher *Publisher
}

func NewForecast(engine *forecast.Engine, report *Report, publisher *Publisher) *Forecast {
	return &Forecast{
		Engine:    engine,
		Report:    report,
		Publisher: publisher,
	}
}

func (s *Forecast) ListModels() []forecast.CatalogEntry {
	return forecast.ListAvailableModels()
}

// RunModel runs the model named by key. A successful combined run is also
// written to the report sinks and published; failures there are only logged.
func (s *Forecast) RunModel(ctx context.Context, key string) (forecast.Result, error) {
	if key != forecast.KeyCombined {
		return s.Engine.Run(ctx, key)
	}

	res, err := s.RunCombined(ctx)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Forecast) RunCombined(ctx context.Context) (*forecast.CombinedResult, error) {
	res, err := s.Engine.RunCombined(ctx)
	observability.CombinedRuns.WithLabelValues(observability.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	if err := s.Report.Write(ctx, res); err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "forecast.report.failed").
			Str("runId", res.RunID).
			Msg("failed to write combined forecast report")
	}

	if err := s.Publisher.Publish(ctx, res); err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "forecast.publish.failed").
			Str("runId", res.RunID).
			Msg("failed to publish combined forecast")
	}

	return res, nil
}
