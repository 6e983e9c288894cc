package analytics

import (
	"sort"

	"yieldboard/models"
)

// YearlySeasonTotals groups production by crop year and season.
//
// Whole Year records are kept out of the four season buckets and out of
// Total; their sum per year, divided by four, is reported as
// ProductionAverage so annual and seasonal records can share one chart.
// Records with a season outside the vocabulary still register their year
// but add nothing.
func YearlySeasonTotals(records []models.YieldRecord) models.SeasonTotals {
	bySeason := make(map[int]map[string]float64)
	wholeYear := make(map[int]float64)
	seen := make(map[int]struct{})

	for _, r := range records {
		production := r.Production.Or(0)
		seen[r.CropYear] = struct{}{}

		if r.Season == models.SeasonWholeYear {
			wholeYear[r.CropYear] += production
			continue
		}
		seasons, ok := bySeason[r.CropYear]
		if !ok {
			seasons = make(map[string]float64)
			bySeason[r.CropYear] = seasons
		}
		seasons[r.Season] += production
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	n := len(years)
	out := models.SeasonTotals{
		Years:             years,
		Spring:            make([]float64, n),
		Summer:            make([]float64, n),
		Autumn:            make([]float64, n),
		Winter:            make([]float64, n),
		Total:             make([]float64, n),
		ProductionAverage: make([]float64, n),
	}

	for i, y := range years {
		var total float64
		for _, season := range models.FixedSeasons {
			v := bySeason[y][season]
			out.Season(season)[i] = v
			total += v
		}
		out.Total[i] = total

		if v, ok := wholeYear[y]; ok {
			out.ProductionAverage[i] = v / 4
		}
	}
	return out
}
