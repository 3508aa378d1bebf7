package forecast

import (
	"context"
	"sync/atomic"
)

var testVoters = []int{110548, 190158, 126739, 113984}

func testCensus() []CensusRow {
	rows := make([]CensusRow, len(testVoters))
	for i := range rows {
		f := float64(i) / 20
		rows[i] = CensusRow{
			ColMale:   0.48 + f,
			ColFemale: 0.52 - f,

			ColRange15To19:  1200 + 100*float64(i),
			ColRange20To24:  1800,
			ColRange25To34:  3100,
			ColRange35To44:  2900,
			ColRange45To54:  2600,
			ColRange55To59:  1100,
			ColRange60To64:  900,
			ColRange65To74:  1400,
			ColRange75To84:  800,
			ColRange85AndUp: 300,

			ColWhite:    0.55,
			ColBlack:    0.08,
			ColIndian:   0.01,
			ColAsian:    0.12,
			ColHawaiian: 0.005,
			ColOther:    0.12,
			ColTwoPlus:  0.045,
			ColHispanic: 0.3 + f,

			ColOwnerOccupied:  0.6 - f,
			ColRenterOccupied: 0.4 + f,
		}
	}
	return rows
}

func testPolls() []PollRow {
	return []PollRow{
		{Population: PopMale, CandidateAPercent: 44, CandidateBPercent: 49, UndecidedPercent: 7},
		{Population: PopFemale, CandidateAPercent: 55, CandidateBPercent: 38, UndecidedPercent: 7},
		{Population: PopAge18To29, CandidateAPercent: 24, CandidateBPercent: 71, UndecidedPercent: 5},
		{Population: PopAge30To39, CandidateAPercent: 40, CandidateBPercent: 52, UndecidedPercent: 8},
		{Population: PopAge40To49, CandidateAPercent: 51, CandidateBPercent: 42, UndecidedPercent: 7},
		{Population: PopAge50To64, CandidateAPercent: 58, CandidateBPercent: 35, UndecidedPercent: 7},
		{Population: PopAge65Plus, CandidateAPercent: 64, CandidateBPercent: 27, UndecidedPercent: 9},
		{Population: PopWhite, CandidateAPercent: 45, CandidateBPercent: 49, UndecidedPercent: 6},
		{Population: PopLatino, CandidateAPercent: 55, CandidateBPercent: 38, UndecidedPercent: 7},
		{Population: PopBlack, CandidateAPercent: 67, CandidateBPercent: 27, UndecidedPercent: 6},
		{Population: PopOther, CandidateAPercent: 52, CandidateBPercent: 41, UndecidedPercent: 7},
		{Population: PopHomeowner, CandidateAPercent: 53, CandidateBPercent: 40, UndecidedPercent: 7},
		{Population: PopRenter, CandidateAPercent: 45, CandidateBPercent: 48, UndecidedPercent: 7},
	}
}

// memCensus serves columns out of in-memory rows.
type memCensus struct {
	rows  []CensusRow
	err   error
	// block, when set, stalls every call until it is closed, ignoring ctx.
	block chan struct{}
	calls atomic.Int32
}

func (m *memCensus) SelectColumns(ctx context.Context, keys []string) ([]CensusRow, error) {
	m.calls.Add(1)
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return nil, m.err
	}
	out := make([]CensusRow, len(m.rows))
	for i, row := range m.rows {
		r := make(CensusRow, len(keys))
		for _, k := range keys {
			if v, ok := row[k]; ok {
				r[k] = v
			}
		}
		out[i] = r
	}
	return out, nil
}

type memPolls struct {
	rows []PollRow
	err  error
}

func (m *memPolls) SelectByPopulations(ctx context.Context, populations []string) ([]PollRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	want := make(map[string]bool, len(populations))
	for _, p := range populations {
		want[p] = true
	}
	var out []PollRow
	for _, r := range m.rows {
		if want[r.Population] {
			out = append(out, r)
		}
	}
	return out, nil
}
