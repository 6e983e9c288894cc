package analytics

import (
	"sort"

	"yieldboard/models"
)

type cropSamples struct {
	productions []float64
	areas       []float64
	fertilizers []float64
	pesticides  []float64
	rainfalls   []float64
}

// sample appends a field's value: a missing field counts as 0, a
// non-numeric one is left out.
func sample(dst []float64, n models.Number) []float64 {
	switch n.State() {
	case models.Missing:
		return append(dst, 0)
	case models.Numeric:
		v, _ := n.Float()
		return append(dst, v)
	}
	return dst
}

func sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return sum(vs) / float64(len(vs))
}

// YearlyCropStatistics groups records by crop year and crop. Each year maps
// to its crops sorted by name.
func YearlyCropStatistics(records []models.YieldRecord) map[int][]models.CropYearStats {
	byYear := make(map[int]map[string]*cropSamples)

	for _, r := range records {
		crops, ok := byYear[r.CropYear]
		if !ok {
			crops = make(map[string]*cropSamples)
			byYear[r.CropYear] = crops
		}
		s, ok := crops[r.Crop]
		if !ok {
			s = &cropSamples{}
			crops[r.Crop] = s
		}
		s.productions = sample(s.productions, r.Production)
		s.areas = sample(s.areas, r.Area)
		s.fertilizers = sample(s.fertilizers, r.Fertilizer)
		s.pesticides = sample(s.pesticides, r.Pesticide)
		s.rainfalls = sample(s.rainfalls, r.AnnualRainfall)
	}

	out := make(map[int][]models.CropYearStats, len(byYear))
	for year, crops := range byYear {
		list := make([]models.CropYearStats, 0, len(crops))
		for crop, s := range crops {
			list = append(list, models.CropYearStats{
				Crop:            crop,
				TotalProduction: sum(s.productions),
				AvgArea:         mean(s.areas),
				TotalFertilizer: sum(s.fertilizers),
				TotalPesticide:  sum(s.pesticides),
				AvgRainfall:     mean(s.rainfalls),
			})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Crop < list[j].Crop })
		out[year] = list
	}
	return out
}
