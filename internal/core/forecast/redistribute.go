package forecast

import (
	"math"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

// percentTolerance is the slack, in percentage points, allowed when checking
// that A+B+undecided adds up to 100.
const percentTolerance = 1e-3

// Redistribute allocates undecided respondents of every poll row to the two
// candidates in proportion to the decided respondents' A:B ratio, and returns
// the resulting splits keyed by population.
func Redistribute(rows []PollRow) (map[string]SubgroupSplit, error) {
	splits := make(map[string]SubgroupSplit, len(rows))
	for _, row := range rows {
		if _, ok := splits[row.Population]; ok {
			return nil, pgerr.ErrInvalidInput.Msg("poll population %q appears more than once", row.Population)
		}
		if err := validatePollRow(row); err != nil {
			return nil, err
		}

		a := row.CandidateAPercent / 100
		b := row.CandidateBPercent / 100
		u := row.UndecidedPercent / 100
		if a+b == 0 {
			return nil, pgerr.ErrInvalidInput.Msg("poll population %q has no decided respondents", row.Population)
		}

		probA := u*(a/(a+b)) + a
		splits[row.Population] = SubgroupSplit{
			ProbA: probA,
			ProbB: 1 - probA,
		}
	}
	return splits, nil
}

func validatePollRow(row PollRow) error {
	if row.Population == "" {
		return pgerr.ErrInvalidInput.Msg("poll row is missing its population label")
	}
	for _, p := range []float64{row.CandidateAPercent, row.CandidateBPercent, row.UndecidedPercent} {
		if math.IsNaN(p) || p < 0 || p > 100 {
			return pgerr.ErrInvalidInput.Msg("poll population %q has a percentage outside [0, 100]", row.Population)
		}
	}
	sum := row.CandidateAPercent + row.CandidateBPercent + row.UndecidedPercent
	if math.Abs(sum-100) > percentTolerance {
		return pgerr.ErrInvalidInput.Msg("poll population %q percentages sum to %g, expected 100", row.Population, sum)
	}
	return nil
}
