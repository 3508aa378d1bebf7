package forecast

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

func TestCombineUniformInputIsUnchanged(t *testing.T) {
	lenses := map[Lens][]DistrictProjection{}
	for _, l := range Lenses {
		lenses[l] = []DistrictProjection{{District: 1, VotesA: 100, VotesB: 100}}
	}

	combined, err := Combine(DefaultWeights(), lenses)
	require.NoError(t, err)
	assert.Equal(t, []DistrictProjection{{District: 1, VotesA: 100, VotesB: 100}}, combined)
}

func TestCombineUsesEachLensAside(t *testing.T) {
	lenses := map[Lens][]DistrictProjection{
		LensGender: {{District: 1, VotesA: 100, VotesB: 0}},
		LensAge:    {{District: 1, VotesA: 100, VotesB: 0}},
		LensRace:   {{District: 1, VotesA: 100, VotesB: 0}},
		LensTenure: {{District: 1, VotesA: 0, VotesB: 100}},
	}

	combined, err := Combine(DefaultWeights(), lenses)
	require.NoError(t, err)
	assert.Equal(t, 70, combined[0].VotesA)
	assert.Equal(t, 30, combined[0].VotesB)
}

func TestCombineRejectsPartialEnsemble(t *testing.T) {
	_, err := Combine(DefaultWeights(), map[Lens][]DistrictProjection{
		LensGender: {{District: 1, VotesA: 1, VotesB: 1}},
	})
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))

	lenses := map[Lens][]DistrictProjection{}
	for _, l := range Lenses {
		lenses[l] = []DistrictProjection{{District: 1, VotesA: 1, VotesB: 1}}
	}
	lenses[LensRace] = append(lenses[LensRace], DistrictProjection{District: 2, VotesA: 1, VotesB: 1})
	_, err = Combine(DefaultWeights(), lenses)
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))
}

func TestSummarizeDelegatesAlwaysAddUp(t *testing.T) {
	for _, total := range []int{0, 1, 53, 475, 476, 4051} {
		for a := 0; a <= 200; a += 3 {
			projections := []DistrictProjection{
				{District: 1, VotesA: a, VotesB: 200 - a},
				{District: 2, VotesA: 200 - a, VotesB: a + 1},
				{District: 3, VotesA: a/2 + 1, VotesB: 100},
			}
			s, err := Summarize(projections, total)
			require.NoError(t, err)
			assert.Equal(t, total, s.DelegatesA+s.DelegatesB)
			assert.Equal(t, 100, s.AvgA+s.AvgB)
		}
	}
}

func TestSummarizeAveragesDistrictShares(t *testing.T) {
	s, err := Summarize([]DistrictProjection{
		{District: 1, VotesA: 60, VotesB: 40},
		{District: 2, VotesA: 300, VotesB: 700},
	}, 475)
	require.NoError(t, err)
	// mean(60, 30) = 45
	assert.Equal(t, StatewideSummary{AvgA: 45, AvgB: 55, DelegatesA: 214, DelegatesB: 261}, s)
}

func TestSummarizeEmptyDistrict(t *testing.T) {
	_, err := Summarize([]DistrictProjection{{District: 1}}, 10)
	assert.True(t, errors.Is(err, pgerr.ErrInvalidInput))
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights(map[string]float64{"gender": 0.2, "age": 0.2, "race": 0.3, "Tenure": 0.3})
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)
	assert.Equal(t, "gender:0.2,age:0.2,race:0.3,tenure:0.3", w.String())

	testCases := []map[string]float64{
		{"gender": 0.2, "age": 0.2, "race": 0.3},
		{"gender": 0.2, "age": 0.2, "race": 0.3, "tenure": 0.31},
		{"gender": -0.2, "age": 0.6, "race": 0.3, "tenure": 0.3},
		{"gender": 0.2, "age": 0.2, "race": 0.3, "tenure": 0.3, "income": 0},
		{"gender": 0.2, "Gender": 0.2, "age": 0.2, "race": 0.3, "tenure": 0.3},
	}
	for _, raw := range testCases {
		_, err := ParseWeights(raw)
		assert.True(t, errors.Is(err, pgerr.ErrConfiguration), "%v", raw)
	}
}

func TestDistrictPercents(t *testing.T) {
	a, b, err := DistrictPercents(DistrictProjection{District: 1, VotesA: 2, VotesB: 1})
	require.NoError(t, err)
	assert.Equal(t, 67, a)
	assert.Equal(t, 33, b)
}

func TestParseWeightsRejectsRepeatedLens(t *testing.T) {
	_, err := ParseWeights(map[string]float64{"gender": 0.2, " GENDER ": 0.2, "age": 0.2, "race": 0.3, "tenure": 0.3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgerr.ErrConfiguration))
	assert.Contains(t, err.Error(), "more than once")
}
