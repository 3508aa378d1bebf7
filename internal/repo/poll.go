package repo

import (
	"context"

	"github.com/uptrace/bun"

	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/repo/selector"
)

type Poll struct {
	db  *bun.DB
	sel selector.S[model.Poll]
}

func NewPoll(db *bun.DB) *Poll {
	return &Poll{db: db, sel: selector.New[model.Poll](db)}
}

func (r *Poll) GetPolls(ctx context.Context) ([]*model.Poll, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("poll_id ASC")
	})
}

// SelectByPopulations returns the poll rows whose population label is one of
// populations. Labels without a row are simply absent from the result.
func (r *Poll) SelectByPopulations(ctx context.Context, populations []string) ([]forecast.PollRow, error) {
	if len(populations) == 0 {
		return nil, nil
	}

	polls, err := r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("population IN (?)", bun.In(populations)).
			Order("poll_id ASC")
	})
	if err != nil {
		return nil, err
	}

	rows := make([]forecast.PollRow, len(polls))
	for i, p := range polls {
		rows[i] = forecast.PollRow{
			Population:        p.Population,
			CandidateAPercent: p.CandidateA,
			CandidateBPercent: p.CandidateB,
			UndecidedPercent:  p.Undecided,
		}
	}
	return rows, nil
}

func (r *Poll) CreateTable(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*model.Poll)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// ReplaceAll swaps the whole poll table for rows in one transaction.
func (r *Poll) ReplaceAll(ctx context.Context, rows []*model.Poll) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*model.Poll)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
}
