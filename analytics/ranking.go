package analytics

import (
	"sort"

	"yieldboard/models"
)

type groupTotal struct {
	key        string
	production float64
	area       float64
	efficiency float64
}

// rankBy accumulates production and area per non-empty key and orders the
// groups by efficiency, highest first, breaking ties by key.
func rankBy(records []models.YieldRecord, key func(models.YieldRecord) string) []groupTotal {
	index := make(map[string]int)
	var groups []groupTotal

	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, groupTotal{key: k})
		}
		if v, ok := r.Production.Float(); ok {
			groups[i].production += v
		}
		if v, ok := r.Area.Float(); ok {
			groups[i].area += v
		}
	}

	for i := range groups {
		groups[i].efficiency = round2(ratio(groups[i].production, groups[i].area))
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].efficiency != groups[j].efficiency {
			return groups[i].efficiency > groups[j].efficiency
		}
		return groups[i].key < groups[j].key
	})
	return groups
}

// ProductionByState ranks states by production per unit of area.
func ProductionByState(records []models.YieldRecord) []models.StateTotal {
	groups := rankBy(records, func(r models.YieldRecord) string { return r.State })
	out := make([]models.StateTotal, len(groups))
	for i, g := range groups {
		out[i] = models.StateTotal{
			State:           g.key,
			TotalProduction: g.production,
			TotalArea:       g.area,
			Efficiency:      g.efficiency,
		}
	}
	return out
}

// ProductionByCrop ranks crops by production per unit of area.
func ProductionByCrop(records []models.YieldRecord) []models.CropTotal {
	groups := rankBy(records, func(r models.YieldRecord) string { return r.Crop })
	out := make([]models.CropTotal, len(groups))
	for i, g := range groups {
		out[i] = models.CropTotal{
			Crop:            g.key,
			TotalProduction: g.production,
			TotalArea:       g.area,
			Efficiency:      g.efficiency,
		}
	}
	return out
}
