package analytics

import (
	"fmt"

	"yieldboard/models"
)

// Summary bundles every view computed from one record snapshot.
type Summary struct {
	TotalProduction float64
	SeasonTotals    models.SeasonTotals
	StatesTotals    []models.StateTotal
	YearlyCropStats map[int][]models.CropYearStats
	Metrics         models.Metrics
	CropsTotals     []models.CropTotal
}

// Summarize runs all views over the same records.
func Summarize(records []models.YieldRecord) (Summary, error) {
	total, err := TotalProduction(records)
	if err != nil {
		return Summary{}, fmt.Errorf("total production: %w", err)
	}
	return Summary{
		TotalProduction: total,
		SeasonTotals:    YearlySeasonTotals(records),
		StatesTotals:    ProductionByState(records),
		YearlyCropStats: YearlyCropStatistics(records),
		Metrics:         GeneralMetrics(records),
		CropsTotals:     ProductionByCrop(records),
	}, nil
}
