package importer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"exusiai.dev/forecast-next/internal/constant"
	"exusiai.dev/forecast-next/internal/infra"
	"exusiai.dev/forecast-next/internal/model"
)

func run(ctx context.Context, deps CommandDeps, censusPath, pollsPath string) error {
	log.Info().Str("census", censusPath).Str("polls", pollsPath).Msg("running import")

	census, err := readLegacyCensus(ctx, censusPath)
	if err != nil {
		return err
	}
	polls, err := readLegacyPolls(ctx, pollsPath)
	if err != nil {
		return err
	}

	if len(census) != len(constant.RegisteredVoters) {
		return errors.Errorf("census file has %d districts, expected %d", len(census), len(constant.RegisteredVoters))
	}

	if err := deps.CensusRepo.CreateTable(ctx); err != nil {
		return errors.Wrap(err, "failed to create census table")
	}
	if err := deps.PollRepo.CreateTable(ctx); err != nil {
		return errors.Wrap(err, "failed to create polls table")
	}
	if err := deps.CensusRepo.ReplaceAll(ctx, census); err != nil {
		return errors.Wrap(err, "failed to import census")
	}
	if err := deps.PollRepo.ReplaceAll(ctx, polls); err != nil {
		return errors.Wrap(err, "failed to import polls")
	}

	log.Info().Int("districts", len(census)).Int("polls", len(polls)).Msg("import finished")
	return nil
}

func openLegacy(path string) (*bun.DB, error) {
	db, err := infra.OpenStore(infra.DriverSQLite, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return db, nil
}

// readLegacyCensus reads the Census table in rowid order, which is district order.
func readLegacyCensus(ctx context.Context, path string) ([]*model.Census, error) {
	db, err := openLegacy(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rows []*model.LegacyCensus
	if err := db.NewSelect().Model(&rows).OrderExpr("rowid ASC").Scan(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to read Census table of %s", path)
	}

	return lo.Map(rows, func(r *model.LegacyCensus, i int) *model.Census {
		return r.ToCensus(i + 1)
	}), nil
}

func readLegacyPolls(ctx context.Context, path string) ([]*model.Poll, error) {
	db, err := openLegacy(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rows []*model.LegacyPoll
	if err := db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to read Polls table of %s", path)
	}

	return lo.Map(rows, func(r *model.LegacyPoll, _ int) *model.Poll {
		return r.ToPoll()
	}), nil
}
