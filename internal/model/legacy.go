package model

import "github.com/uptrace/bun"

// LegacyCensus maps the Census table of the original census.db file.
type LegacyCensus struct {
	bun.BaseModel `bun:"table:Census"`

	Male   float64 `bun:"male"`
	Female float64 `bun:"female"`

	Range1519   float64 `bun:"range1519"`
	Range2024   float64 `bun:"range2024"`
	Range2534   float64 `bun:"range2534"`
	Range3544   float64 `bun:"range3544"`
	Range4554   float64 `bun:"range4554"`
	Range5559   float64 `bun:"range5559"`
	Range6064   float64 `bun:"range6064"`
	Range6574   float64 `bun:"range6574"`
	Range7584   float64 `bun:"range7584"`
	Range85Plus float64 `bun:"range85plus"`

	White    float64 `bun:"white"`
	Black    float64 `bun:"black"`
	Indian   float64 `bun:"indian"`
	Asian    float64 `bun:"asian"`
	Hawaiian float64 `bun:"hawaiian"`
	Other    float64 `bun:"other"`
	TwoPlus  float64 `bun:"twoPlus"`
	Hispanic float64 `bun:"hispanic"`

	OwnerOccupied  float64 `bun:"ownerOccupied"`
	RenterOccupied float64 `bun:"renterOccupied"`
}

// ToCensus assigns the legacy row to a district.
func (l *LegacyCensus) ToCensus(districtID int) *Census {
	return &Census{
		DistrictID:     districtID,
		Male:           l.Male,
		Female:         l.Female,
		Range1519:      l.Range1519,
		Range2024:      l.Range2024,
		Range2534:      l.Range2534,
		Range3544:      l.Range3544,
		Range4554:      l.Range4554,
		Range5559:      l.Range5559,
		Range6064:      l.Range6064,
		Range6574:      l.Range6574,
		Range7584:      l.Range7584,
		Range85Plus:    l.Range85Plus,
		White:          l.White,
		Black:          l.Black,
		Indian:         l.Indian,
		Asian:          l.Asian,
		Hawaiian:       l.Hawaiian,
		Other:          l.Other,
		TwoPlus:        l.TwoPlus,
		Hispanic:       l.Hispanic,
		OwnerOccupied:  l.OwnerOccupied,
		RenterOccupied: l.RenterOccupied,
	}
}

// LegacyPoll maps the Polls table of the original polls.db file, where the
// two candidate columns are named after the 2016 candidates.
type LegacyPoll struct {
	bun.BaseModel `bun:"table:Polls"`

	Population string  `bun:"population"`
	Hillary    float64 `bun:"hillary"`
	Bernie     float64 `bun:"bernie"`
	Undecided  float64 `bun:"undecided"`
}

func (l *LegacyPoll) ToPoll() *Poll {
	return &Poll{
		Population: l.Population,
		CandidateA: l.Hillary,
		CandidateB: l.Bernie,
		Undecided:  l.Undecided,
	}
}
