package forecast

import (
	"math"

	"github.com/samber/lo"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

// Census column keys.
const (
	ColMale   = "male"
	ColFemale = "female"

	ColRange15To19  = "range1519"
	ColRange20To24  = "range2024"
	ColRange25To34  = "range2534"
	ColRange35To44  = "range3544"
	ColRange45To54  = "range4554"
	ColRange55To59  = "range5559"
	ColRange60To64  = "range6064"
	ColRange65To74  = "range6574"
	ColRange75To84  = "range7584"
	ColRange85AndUp = "range85plus"

	ColWhite    = "white"
	ColBlack    = "black"
	ColIndian   = "indian"
	ColAsian    = "asian"
	ColHawaiian = "hawaiian"
	ColOther    = "other"
	ColTwoPlus  = "twoPlus"
	ColHispanic = "hispanic"

	ColOwnerOccupied  = "ownerOccupied"
	ColRenterOccupied = "renterOccupied"
)

// Poll subgroup labels, as they appear in the population column of the poll table.
const (
	PopMale   = "Male"
	PopFemale = "Female"

	PopAge18To29 = "18-29"
	PopAge30To39 = "30-39"
	PopAge40To49 = "40-49"
	PopAge50To64 = "50-64"
	PopAge65Plus = "65 or older"

	PopWhite  = "White non-Hispanic"
	PopLatino = "Latino"
	PopBlack  = "African American"
	PopOther  = "Asian American/other"

	PopHomeowner = "Homeowner"
	PopRenter    = "Renter/other"
)

// shareTolerance bounds how far fractional gender and tenure shares may drift from 1.
const shareTolerance = 1e-3

// Axis describes how one lens reads the census: which poll subgroups it
// projects, which census columns it needs, and how a census row is turned
// into per-subgroup shares aligned with Subgroups.
type Axis struct {
	Lens          Lens
	Subgroups     []string
	CensusColumns []string
	Shares        func(row CensusRow) ([]float64, error)
}

// ageColumns are the ten five-year census brackets, youngest first.
var ageColumns = []string{
	ColRange15To19, ColRange20To24, ColRange25To34, ColRange35To44, ColRange45To54,
	ColRange55To59, ColRange60To64, ColRange65To74, ColRange75To84, ColRange85AndUp,
}

var axes = map[Lens]Axis{
	LensGender: {
		Lens:          LensGender,
		Subgroups:     []string{PopMale, PopFemale},
		CensusColumns: []string{ColMale, ColFemale},
		Shares:        fractionShares(ColMale, ColFemale),
	},
	LensAge: {
		Lens:          LensAge,
		Subgroups:     []string{PopAge18To29, PopAge30To39, PopAge40To49, PopAge50To64, PopAge65Plus},
		CensusColumns: ageColumns,
		Shares:        AgeShares,
	},
	LensRace: {
		Lens:      LensRace,
		Subgroups: []string{PopWhite, PopLatino, PopBlack, PopOther},
		CensusColumns: []string{
			ColWhite, ColBlack, ColIndian, ColAsian, ColHawaiian, ColOther, ColTwoPlus, ColHispanic,
		},
		Shares: RaceShares,
	},
	LensTenure: {
		Lens:          LensTenure,
		Subgroups:     []string{PopHomeowner, PopRenter},
		CensusColumns: []string{ColOwnerOccupied, ColRenterOccupied},
		Shares:        fractionShares(ColOwnerOccupied, ColRenterOccupied),
	},
}

// AxisOf returns the descriptor of lens l.
func AxisOf(l Lens) (Axis, bool) {
	a, ok := axes[l]
	return a, ok
}

func column(row CensusRow, key string) (float64, error) {
	v, ok := row[key]
	if !ok {
		return 0, pgerr.ErrInvalidInput.Msg("census row is missing column %q", key)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, pgerr.ErrInvalidInput.Msg("census column %q is not a finite number", key)
	}
	return v, nil
}

func columns(row CensusRow, keys ...string) ([]float64, error) {
	values := make([]float64, len(keys))
	for i, key := range keys {
		v, err := column(row, key)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// fractionShares uses already-fractional columns as shares, requiring them to sum to 1.
func fractionShares(keys ...string) func(CensusRow) ([]float64, error) {
	return func(row CensusRow) ([]float64, error) {
		shares, err := columns(row, keys...)
		if err != nil {
			return nil, err
		}
		for i, s := range shares {
			if s < 0 {
				return nil, pgerr.ErrInvalidInput.Msg("census share %q is negative", keys[i])
			}
		}
		if sum := lo.Sum(shares); math.Abs(sum-1) > shareTolerance {
			return nil, pgerr.ErrInvalidInput.Msg("census shares %v sum to %g, expected 1", keys, sum)
		}
		return shares, nil
	}
}

// AgeBuckets maps the ten five-year census brackets onto the five poll age
// buckets, splitting straddling brackets linearly. Values are raw counts.
func AgeBuckets(row CensusRow) ([]float64, error) {
	r, err := columns(row, ageColumns...)
	if err != nil {
		return nil, err
	}
	r15, r20, r25, r35, r45, r55, r60, r65, r75, r85 := r[0], r[1], r[2], r[3], r[4], r[5], r[6], r[7], r[8], r[9]

	return []float64{
		0.4*r15 + r20 + 0.5*r25,
		0.5*r25 + 0.5*r35,
		0.5*r35 + 0.5*r45,
		0.5*r45 + r55 + r60,
		r65 + r75 + r85,
	}, nil
}

// AgeShares divides the age buckets by the district's total census count, the
// sum of every supplied bracket.
func AgeShares(row CensusRow) ([]float64, error) {
	buckets, err := AgeBuckets(row)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, key := range ageColumns {
		total += row[key]
	}
	if total <= 0 {
		return nil, pgerr.ErrInvalidInput.Msg("census age brackets total %g, expected a positive count", total)
	}
	return lo.Map(buckets, func(b float64, _ int) float64 {
		return b / total
	}), nil
}

// RaceShares corrects the census race categories for self-reported Hispanic
// overlap. The adjusted values are used as-is and are not re-normalized.
func RaceShares(row CensusRow) ([]float64, error) {
	r, err := columns(row,
		ColWhite, ColBlack, ColIndian, ColAsian, ColHawaiian, ColOther, ColTwoPlus, ColHispanic,
	)
	if err != nil {
		return nil, err
	}
	white, black, indian, asian, hawaiian, other, twoPlus, hispanic := r[0], r[1], r[2], r[3], r[4], r[5], r[6], r[7]

	// order follows the race axis subgroups
	return []float64{
		white - 0.9*hispanic,
		hispanic,
		black - 0.1*hispanic,
		asian + hawaiian + indian + other + twoPlus,
	}, nil
}
