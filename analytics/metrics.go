package analytics

import "yieldboard/models"

// GeneralMetrics computes the KPI cards in a single pass. Unlike
// TotalProduction it never fails: an empty slice yields zero metrics.
func GeneralMetrics(records []models.YieldRecord) models.Metrics {
	if len(records) == 0 {
		return models.Metrics{}
	}

	var production, area float64
	species := make(map[string]struct{})
	states := make(map[string]struct{})

	for _, r := range records {
		if v, ok := r.Production.Float(); ok {
			production += v
		}
		if v, ok := r.Area.Float(); ok {
			area += v
		}
		if r.Crop != "" {
			species[r.Crop] = struct{}{}
		}
		if r.State != "" {
			states[r.State] = struct{}{}
		}
	}

	return models.Metrics{
		ProductionEfficiency: round2(ratio(production, area)),
		TotalProduction:      round2(production),
		TotalCultivatedArea:  round2(area),
		TotalSpecies:         len(species),
		TotalStates:          len(states),
	}
}
