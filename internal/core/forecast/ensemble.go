package forecast

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

const weightTolerance = 1e-6

// Weights is the ensemble weight table, one weight per lens.
type Weights map[Lens]float64

// DefaultWeights is the weight table used when none is configured.
func DefaultWeights() Weights {
	return Weights{
		LensGender: 0.2,
		LensAge:    0.2,
		LensRace:   0.3,
		LensTenure: 0.3,
	}
}

// ParseWeights builds a weight table from lens names ("gender", "age", "race",
// "tenure") and validates it.
func ParseWeights(raw map[string]float64) (Weights, error) {
	byName := lo.SliceToMap(Lenses, func(l Lens) (string, Lens) {
		return l.String(), l
	})

	w := make(Weights, len(raw))
	for name, v := range raw {
		l, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, pgerr.ErrConfiguration.Msg("ensemble weights: unknown lens %q", name)
		}
		if _, dup := w[l]; dup {
			return nil, pgerr.ErrConfiguration.Msg("ensemble weights: lens %q given more than once", l)
		}
		w[l] = v
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks that every lens has a non-negative weight and the weights sum to 1.
func (w Weights) Validate() error {
	var sum float64
	for _, l := range Lenses {
		v, ok := w[l]
		if !ok {
			return pgerr.ErrConfiguration.Msg("ensemble weights: missing weight for lens %q", l)
		}
		if math.IsNaN(v) || v < 0 {
			return pgerr.ErrConfiguration.Msg("ensemble weights: lens %q has invalid weight %g", l, v)
		}
		sum += v
	}
	if len(w) != len(Lenses) {
		return pgerr.ErrConfiguration.Msg("ensemble weights: expected %d lenses, got %d", len(Lenses), len(w))
	}
	if math.Abs(sum-1) > weightTolerance {
		return pgerr.ErrConfiguration.Msg("ensemble weights sum to %g, expected 1", sum)
	}
	return nil
}

func (w Weights) String() string {
	parts := make([]string, 0, len(w))
	for _, l := range Lenses {
		parts = append(parts, l.String()+":"+strconv.FormatFloat(w[l], 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}

// Combine blends per-lens projections district by district:
// votesB = round(Σ w*votesB) and votesA = round(Σ w*votesA).
// Every lens in w must be present, and all lenses must cover the same districts.
func Combine(w Weights, lenses map[Lens][]DistrictProjection) ([]DistrictProjection, error) {
	n := -1
	for _, l := range Lenses {
		p, ok := lenses[l]
		if !ok {
			return nil, pgerr.ErrInvalidInput.Msg("combine: missing projection for lens %q", l)
		}
		if n == -1 {
			n = len(p)
		} else if len(p) != n {
			return nil, pgerr.ErrInvalidInput.Msg("combine: lens %q covers %d districts, expected %d", l, len(p), n)
		}
	}

	combined := make([]DistrictProjection, n)
	for i := 0; i < n; i++ {
		var a, b float64
		for _, l := range Lenses {
			p := lenses[l][i]
			a += w[l] * float64(p.VotesA)
			b += w[l] * float64(p.VotesB)
		}
		combined[i] = DistrictProjection{
			District: i + 1,
			VotesA:   round(a),
			VotesB:   round(b),
		}
	}
	return combined, nil
}

// Summarize averages the per-district A share into a statewide percentage and
// splits totalDelegates accordingly. delegatesA+delegatesB == totalDelegates.
func Summarize(projections []DistrictProjection, totalDelegates int) (StatewideSummary, error) {
	if len(projections) == 0 {
		return StatewideSummary{}, pgerr.ErrInvalidInput.Msg("summarize: no districts")
	}
	if totalDelegates < 0 {
		return StatewideSummary{}, pgerr.ErrInvalidInput.Msg("summarize: negative delegate total %d", totalDelegates)
	}

	var pctSum float64
	for _, p := range projections {
		pct, err := percentA(p)
		if err != nil {
			return StatewideSummary{}, err
		}
		pctSum += pct
	}

	avgA := round(pctSum / float64(len(projections)))
	delegatesA := round(float64(totalDelegates) * float64(avgA) / 100)
	return StatewideSummary{
		AvgA:       avgA,
		AvgB:       100 - avgA,
		DelegatesA: delegatesA,
		DelegatesB: totalDelegates - delegatesA,
	}, nil
}

// DistrictPercents returns the whole-number A and B percentages of one district.
func DistrictPercents(p DistrictProjection) (int, int, error) {
	pct, err := percentA(p)
	if err != nil {
		return 0, 0, err
	}
	a := round(pct)
	return a, 100 - a, nil
}

func percentA(p DistrictProjection) (float64, error) {
	total := p.VotesA + p.VotesB
	if total <= 0 {
		return 0, pgerr.ErrInvalidInput.Msg("district %d has no projected votes", p.District)
	}
	return float64(p.VotesA) / float64(total) * 100, nil
}
