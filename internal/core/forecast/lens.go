package forecast

import (
	"github.com/pkg/errors"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

// ComputeLens projects the poll splits of one axis onto every district. For
// district i, votesB is the rounded sum of voters[i]*share*probB over the
// axis subgroups, and votesA is always voters[i]-votesB.
func ComputeLens(axis Axis, census []CensusRow, polls []PollRow, voters []int) ([]DistrictProjection, error) {
	if len(census) != len(voters) {
		return nil, pgerr.ErrInvalidInput.Msg("%s lens: got %d census rows for %d districts", axis.Lens, len(census), len(voters))
	}

	splits, err := Redistribute(polls)
	if err != nil {
		return nil, err
	}

	probB := make([]float64, len(axis.Subgroups))
	for j, key := range axis.Subgroups {
		split, ok := splits[key]
		if !ok {
			return nil, pgerr.ErrInvalidInput.Msg("%s lens: no poll row for subgroup %q", axis.Lens, key)
		}
		probB[j] = split.ProbB
	}

	projections := make([]DistrictProjection, len(voters))
	for i, registered := range voters {
		shares, err := axis.Shares(census[i])
		if err != nil {
			var fe *pgerr.ForecastError
			if errors.As(err, &fe) {
				return nil, fe.Msg("%s lens: district %d: %s", axis.Lens, i+1, fe.Message)
			}
			return nil, err
		}

		var votesB float64
		for j, share := range shares {
			votesB += float64(registered) * share * probB[j]
		}

		b := round(votesB)
		projections[i] = DistrictProjection{
			District: i + 1,
			VotesA:   registered - b,
			VotesB:   b,
		}
	}
	return projections, nil
}
