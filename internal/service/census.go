package service

import (
	"context"

	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/pkg/pgerr"
	"exusiai.dev/forecast-next/internal/repo"
)

type Census struct {
	CensusRepo *repo.Census
	Engine     *forecast.Engine
}

func NewCensus(censusRepo *repo.Census, engine *forecast.Engine) *Census {
	return &Census{
		CensusRepo: censusRepo,
		Engine:     engine,
	}
}

func (s *Census) Schema() []forecast.CatalogEntry {
	return forecast.ListCensusSchema()
}

// Column returns the values of one census column, one per district.
func (s *Census) Column(ctx context.Context, key string) ([]float64, error) {
	if !forecast.IsCensusColumn(key) {
		return nil, pgerr.ErrInvalidInput.Msg("unknown census column %q", key)
	}
	return s.CensusRepo.SelectColumn(ctx, key)
}

// Voters returns the registered voters of every district.
func (s *Census) Voters() []int {
	return s.Engine.Voters()
}
