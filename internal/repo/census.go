package repo

import (
	"context"

	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/pkg/pgerr"
	"exusiai.dev/forecast-next/internal/repo/selector"
)

type censusField struct {
	column string
	get    func(c *model.Census) float64
}

// censusFields maps census catalog keys onto the census table.
var censusFields = map[string]censusField{
	forecast.ColMale:           {"male", func(c *model.Census) float64 { return c.Male }},
	forecast.ColFemale:         {"female", func(c *model.Census) float64 { return c.Female }},
	forecast.ColRange15To19:    {"range1519", func(c *model.Census) float64 { return c.Range1519 }},
	forecast.ColRange20To24:    {"range2024", func(c *model.Census) float64 { return c.Range2024 }},
	forecast.ColRange25To34:    {"range2534", func(c *model.Census) float64 { return c.Range2534 }},
	forecast.ColRange35To44:    {"range3544", func(c *model.Census) float64 { return c.Range3544 }},
	forecast.ColRange45To54:    {"range4554", func(c *model.Census) float64 { return c.Range4554 }},
	forecast.ColRange55To59:    {"range5559", func(c *model.Census) float64 { return c.Range5559 }},
	forecast.ColRange60To64:    {"range6064", func(c *model.Census) float64 { return c.Range6064 }},
	forecast.ColRange65To74:    {"range6574", func(c *model.Census) float64 { return c.Range6574 }},
	forecast.ColRange75To84:    {"range7584", func(c *model.Census) float64 { return c.Range7584 }},
	forecast.ColRange85AndUp:   {"range85plus", func(c *model.Census) float64 { return c.Range85Plus }},
	forecast.ColWhite:          {"white", func(c *model.Census) float64 { return c.White }},
	forecast.ColBlack:          {"black", func(c *model.Census) float64 { return c.Black }},
	forecast.ColIndian:         {"indian", func(c *model.Census) float64 { return c.Indian }},
	forecast.ColAsian:          {"asian", func(c *model.Census) float64 { return c.Asian }},
	forecast.ColHawaiian:       {"hawaiian", func(c *model.Census) float64 { return c.Hawaiian }},
	forecast.ColOther:          {"other", func(c *model.Census) float64 { return c.Other }},
	forecast.ColTwoPlus:        {"two_plus", func(c *model.Census) float64 { return c.TwoPlus }},
	forecast.ColHispanic:       {"hispanic", func(c *model.Census) float64 { return c.Hispanic }},
	forecast.ColOwnerOccupied:  {"owner_occupied", func(c *model.Census) float64 { return c.OwnerOccupied }},
	forecast.ColRenterOccupied: {"renter_occupied", func(c *model.Census) float64 { return c.RenterOccupied }},
}

type Census struct {
	db  *bun.DB
	sel selector.S[model.Census]
}

func NewCensus(db *bun.DB) *Census {
	return &Census{db: db, sel: selector.New[model.Census](db)}
}

func lookupFields(keys []string) ([]censusField, error) {
	fields := make([]censusField, 0, len(keys))
	for _, key := range keys {
		f, ok := censusFields[key]
		if !ok {
			return nil, pgerr.ErrInvalidInput.Msg("unknown census column %q", key)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// SelectColumns reads the given catalog columns for every district, in
// district order.
func (r *Census) SelectColumns(ctx context.Context, keys []string) ([]forecast.CensusRow, error) {
	fields, err := lookupFields(keys)
	if err != nil {
		return nil, err
	}

	rows, err := r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Column("district_id").
			Column(lo.Map(fields, func(f censusField, _ int) string { return f.column })...).
			Order("district_id ASC")
	})
	if err != nil {
		return nil, err
	}

	out := make([]forecast.CensusRow, len(rows))
	for i, row := range rows {
		values := make(forecast.CensusRow, len(keys))
		for j, f := range fields {
			values[keys[j]] = f.get(row)
		}
		out[i] = values
	}
	return out, nil
}

// SelectColumn reads a single catalog column for every district.
func (r *Census) SelectColumn(ctx context.Context, key string) ([]float64, error) {
	rows, err := r.SelectColumns(ctx, []string{key})
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row forecast.CensusRow, _ int) float64 { return row[key] }), nil
}

func (r *Census) CountDistricts(ctx context.Context) (int, error) {
	return r.sel.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery { return q })
}

func (r *Census) CreateTable(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*model.Census)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// ReplaceAll swaps the whole census table for rows in one transaction.
func (r *Census) ReplaceAll(ctx context.Context, rows []*model.Census) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*model.Census)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
}
