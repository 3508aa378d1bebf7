// Package forecast implements the demographic voter prediction engine: four
// lens models (gender, age, race, tenure) that project redistributed poll
// splits onto per-district census shares, and the ensemble that blends them
// into a combined forecast with a statewide delegate allocation.
//
// The package only consumes plain rows through the CensusStore and PollStore
// interfaces and produces plain result records. It holds no state between
// calls.
package forecast

import (
	"math"
)

// Lens is one demographic axis a projection is computed over.
type Lens int

const (
	LensGender Lens = iota
	LensAge
	LensRace
	LensTenure
)

// Lenses lists every lens in combination order.
var Lenses = []Lens{LensGender, LensAge, LensRace, LensTenure}

func (l Lens) String() string {
	switch l {
	case LensGender:
		return "gender"
	case LensAge:
		return "age"
	case LensRace:
		return "race"
	case LensTenure:
		return "tenure"
	}
	return "unknown"
}

// Key is the model key the lens is addressed by, e.g. "genderModel".
func (l Lens) Key() string {
	return l.String() + "Model"
}

// PollRow is one demographic subpopulation of one poll axis, in percent.
type PollRow struct {
	Population        string
	CandidateAPercent float64
	CandidateBPercent float64
	UndecidedPercent  float64
}

// CensusRow holds the census values of one district keyed by census column key.
type CensusRow map[string]float64

// SubgroupSplit is the two-way probability split of a subgroup after the
// undecided share has been allocated. ProbA+ProbB == 1.
type SubgroupSplit struct {
	ProbA float64 `json:"probA"`
	ProbB float64 `json:"probB"`
}

// DistrictProjection is the projected vote split of one district.
type DistrictProjection struct {
	// District is 1-based.
	District int `json:"district"`
	VotesA   int `json:"votesA"`
	VotesB   int `json:"votesB"`
}

// StatewideSummary is the statewide average share and delegate split of a combined run.
type StatewideSummary struct {
	AvgA       int `json:"avgA"`
	AvgB       int `json:"avgB"`
	DelegatesA int `json:"delegatesA"`
	DelegatesB int `json:"delegatesB"`
}

// round rounds half up, so x.5 always goes to the larger integer.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
