package models

// SeasonTotals holds production per year, aligned by index with Years.
type SeasonTotals struct {
	Years  []int     `json:"years"`
	Spring []float64 `json:"Spring"`
	Summer []float64 `json:"Summer"`
	Autumn []float64 `json:"Autumn"`
	Winter []float64 `json:"Winter"`
	// Total is the sum of the four fixed seasons; Whole Year is not included.
	Total []float64 `json:"total"`
	// ProductionAverage is a year's Whole Year production divided by four.
	ProductionAverage []float64 `json:"production_average"`
}

// Season returns the per-year slice for one of the fixed seasons, or nil.
func (s *SeasonTotals) Season(name string) []float64 {
	switch name {
	case SeasonSpring:
		return s.Spring
	case SeasonSummer:
		return s.Summer
	case SeasonAutumn:
		return s.Autumn
	case SeasonWinter:
		return s.Winter
	}
	return nil
}

type StateTotal struct {
	State           string  `json:"state"`
	TotalProduction float64 `json:"total_production"`
	TotalArea       float64 `json:"total_area"`
	Efficiency      float64 `json:"efficiency"`
}

type CropTotal struct {
	Crop            string  `json:"crop"`
	TotalProduction float64 `json:"total_production"`
	TotalArea       float64 `json:"total_area"`
	Efficiency      float64 `json:"efficiency"`
}

// CropYearStats summarizes one crop within one crop year.
type CropYearStats struct {
	Crop            string  `json:"crop"`
	TotalProduction float64 `json:"total_production"`
	AvgArea         float64 `json:"avg_area"`
	TotalFertilizer float64 `json:"total_fertilizer"`
	TotalPesticide  float64 `json:"total_pesticide"`
	AvgRainfall     float64 `json:"avg_rainfall"`
}

// Metrics are the dashboard KPI cards.
type Metrics struct {
	ProductionEfficiency float64 `json:"production_efficiency"`
	TotalProduction      float64 `json:"total_production"`
	TotalCultivatedArea  float64 `json:"total_cultivated_area"`
	TotalSpecies         int     `json:"total_species"`
	TotalStates          int     `json:"total_states"`
}

// FilterOptions lists the selectable values of each filterable field.
type FilterOptions struct {
	CropYears []string `json:"crop_years"`
	Seasons   []string `json:"seasons"`
	Crops     []string `json:"crops"`
	States    []string `json:"states"`
}
