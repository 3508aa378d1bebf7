package model

import "github.com/uptrace/bun"

// Census is one district's census profile. Gender, race and tenure columns are
// fractions of the district population; age columns are raw head counts.
type Census struct {
	bun.BaseModel `bun:"census,alias:c"`

	DistrictID int `bun:",pk" json:"districtId"`

	Male   float64 `json:"male"`
	Female float64 `json:"female"`

	Range1519   float64 `json:"range1519"`
	Range2024   float64 `json:"range2024"`
	Range2534   float64 `json:"range2534"`
	Range3544   float64 `json:"range3544"`
	Range4554   float64 `json:"range4554"`
	Range5559   float64 `json:"range5559"`
	Range6064   float64 `json:"range6064"`
	Range6574   float64 `json:"range6574"`
	Range7584   float64 `json:"range7584"`
	Range85Plus float64 `bun:"range85plus" json:"range85plus"`

	White    float64 `json:"white"`
	Black    float64 `json:"black"`
	Indian   float64 `json:"indian"`
	Asian    float64 `json:"asian"`
	Hawaiian float64 `json:"hawaiian"`
	Other    float64 `json:"other"`
	TwoPlus  float64 `json:"twoPlus"`
	Hispanic float64 `json:"hispanic"`

	OwnerOccupied  float64 `json:"ownerOccupied"`
	RenterOccupied float64 `json:"renterOccupied"`
}
