// Package report renders dashboard views into an XLSX workbook.
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"yieldboard/analytics"
	"yieldboard/models"
)

// Sheet names, in workbook order.
const (
	SheetSummary = "Summary"
	SheetStates  = "States"
	SheetCrops   = "Crops"
	SheetSeasons = "Seasons"
	SheetYearly  = "Yearly"
)

// Build writes one sheet per view. The caller owns the returned file and
// must Close it.
func Build(s analytics.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetStates, SheetCrops, SheetSeasons, SheetYearly} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	writers := []struct {
		sheet string
		rows  [][]any
	}{
		{SheetSummary, summaryRows(s)},
		{SheetStates, stateRows(s.StatesTotals)},
		{SheetCrops, cropRows(s.CropsTotals)},
		{SheetSeasons, seasonRows(s.SeasonTotals)},
		{SheetYearly, yearlyRows(s.YearlyCropStats)},
	}
	for _, wr := range writers {
		if err := writeRows(f, wr.sheet, wr.rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(s analytics.Summary) [][]any {
	m := s.Metrics
	return [][]any{
		{"metric", "value"},
		{"total_production", s.TotalProduction},
		{"total_cultivated_area", m.TotalCultivatedArea},
		{"production_efficiency", m.ProductionEfficiency},
		{"total_species", m.TotalSpecies},
		{"total_states", m.TotalStates},
	}
}

func stateRows(totals []models.StateTotal) [][]any {
	rows := [][]any{{"state", "total_production", "total_area", "efficiency"}}
	for _, t := range totals {
		rows = append(rows, []any{t.State, t.TotalProduction, t.TotalArea, t.Efficiency})
	}
	return rows
}

func cropRows(totals []models.CropTotal) [][]any {
	rows := [][]any{{"crop", "total_production", "total_area", "efficiency"}}
	for _, t := range totals {
		rows = append(rows, []any{t.Crop, t.TotalProduction, t.TotalArea, t.Efficiency})
	}
	return rows
}

func seasonRows(st models.SeasonTotals) [][]any {
	header := []any{"year"}
	for _, season := range models.FixedSeasons {
		header = append(header, season)
	}
	header = append(header, "total", "production_average")

	rows := [][]any{header}
	for i, year := range st.Years {
		row := []any{year}
		for _, season := range models.FixedSeasons {
			row = append(row, st.Season(season)[i])
		}
		row = append(row, st.Total[i], st.ProductionAverage[i])
		rows = append(rows, row)
	}
	return rows
}

func yearlyRows(stats map[int][]models.CropYearStats) [][]any {
	years := make([]int, 0, len(stats))
	for y := range stats {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := [][]any{{"year", "crop", "total_production", "avg_area", "total_fertilizer", "total_pesticide", "avg_rainfall"}}
	for _, y := range years {
		for _, c := range stats[y] {
			rows = append(rows, []any{y, c.Crop, c.TotalProduction, c.AvgArea, c.TotalFertilizer, c.TotalPesticide, c.AvgRainfall})
		}
	}
	return rows
}
