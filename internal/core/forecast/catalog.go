package forecast

const (
	KeyCombined = "combinedModel"

	tracerName = "exusiai.dev/forecast-next/internal/core/forecast"
)

type CatalogEntry struct {
	Label string `json:"label"`
	Index int    `json:"index"`
	Key   string `json:"key"`
}

// ListAvailableModels returns the four lens models and the combined model.
func ListAvailableModels() []CatalogEntry {
	return []CatalogEntry{
		{Label: "Gender Model", Index: 0, Key: LensGender.Key()},
		{Label: "Race/Ethnicity Model", Index: 1, Key: LensRace.Key()},
		{Label: "Age Model", Index: 2, Key: LensAge.Key()},
		{Label: "Tenure Model", Index: 3, Key: LensTenure.Key()},
		{Label: "Combined Model", Index: 4, Key: KeyCombined},
	}
}

var censusSchema = []CatalogEntry{
	{Label: "Male", Key: ColMale},
	{Label: "Female", Key: ColFemale},
	{Label: "Age 15 to 19", Key: ColRange15To19},
	{Label: "Age 20 to 24", Key: ColRange20To24},
	{Label: "Age 25 to 34", Key: ColRange25To34},
	{Label: "Age 35 to 44", Key: ColRange35To44},
	{Label: "Age 45 to 54", Key: ColRange45To54},
	{Label: "Age 55 to 59", Key: ColRange55To59},
	{Label: "Age 60 to 64", Key: ColRange60To64},
	{Label: "Age 65 to 74", Key: ColRange65To74},
	{Label: "Age 75 to 84", Key: ColRange75To84},
	{Label: "Age 85 and over", Key: ColRange85AndUp},
	{Label: "White", Key: ColWhite},
	{Label: "Black or African American", Key: ColBlack},
	{Label: "American Indian and Alaska Native", Key: ColIndian},
	{Label: "Asian", Key: ColAsian},
	{Label: "Native Hawaiian and Other Pacific Islander", Key: ColHawaiian},
	{Label: "Some Other Race", Key: ColOther},
	{Label: "Two or More Races", Key: ColTwoPlus},
	{Label: "Hispanic or Latino", Key: ColHispanic},
	{Label: "Owner-occupied Housing", Key: ColOwnerOccupied},
	{Label: "Renter-occupied Housing", Key: ColRenterOccupied},
}

// ListCensusSchema returns the selectable census columns.
func ListCensusSchema() []CatalogEntry {
	entries := make([]CatalogEntry, len(censusSchema))
	for i, e := range censusSchema {
		e.Index = i
		entries[i] = e
	}
	return entries
}

// IsCensusColumn reports whether key names a selectable census column.
func IsCensusColumn(key string) bool {
	for _, e := range censusSchema {
		if e.Key == key {
			return true
		}
	}
	return false
}
