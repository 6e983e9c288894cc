package analytics

import "yieldboard/models"

type rec struct {
	crop, season, state string
	year                int
	area, production    models.Number
	rain, fert, pest    models.Number
}

func (r rec) build() models.YieldRecord {
	return models.YieldRecord{
		Crop:           r.crop,
		CropYear:       r.year,
		Season:         r.season,
		State:          r.state,
		Area:           r.area,
		Production:     r.production,
		AnnualRainfall: r.rain,
		Fertilizer:     r.fert,
		Pesticide:      r.pest,
	}
}

func records(rs ...rec) []models.YieldRecord {
	out := make([]models.YieldRecord, len(rs))
	for i, r := range rs {
		out[i] = r.build()
	}
	return out
}

func n(v float64) models.Number { return models.Num(v) }

// wheatAndCorn is the two-state reference scenario used across the tests.
func wheatAndCorn() []models.YieldRecord {
	return records(
		rec{crop: "Wheat", year: 2024, season: models.SeasonSpring, state: "A", area: n(10), production: n(100)},
		rec{crop: "Corn", year: 2024, season: models.SeasonSpring, state: "B", area: n(5), production: n(100)},
	)
}
