// Package dataset reads crop-yield spreadsheets into yield documents.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"yieldboard/models"
)

// seasonAliases maps legacy season labels onto the collection vocabulary.
var seasonAliases = map[string]string{
	"Kharif": models.SeasonSpring,
	"Rabi":   models.SeasonAutumn,
	"Fall":   models.SeasonAutumn,
}

var columns = []string{
	"crop", "crop_year", "season", "state", "area", "production",
	"annual_rainfall", "fertilizer", "pesticide", "yield",
}

// Skipped describes a row that was not loaded.
type Skipped struct {
	Row    int
	Reason string
}

// Load reads a .csv or .xlsx file. The first row is the header; column
// names are matched case-insensitively. Rows with empty cells or values
// that fail validation are returned in skipped rather than failing the load.
func Load(path string) (docs []models.YieldDoc, skipped []Skipped, err error) {
	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, nil, err
	}
	return Parse(rows)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// Parse turns header + data rows into documents.
func Parse(rows [][]string) ([]models.YieldDoc, []Skipped, error) {
	if len(rows) <= 1 {
		return nil, nil, fmt.Errorf("no data rows")
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", c)
		}
	}

	var (
		docs    []models.YieldDoc
		skipped []Skipped
	)
	for i, row := range rows[1:] {
		line := i + 2
		cells := make(map[string]string, len(columns))
		empty := ""
		for _, c := range columns {
			var v string
			if idx := index[c]; idx < len(row) {
				v = strings.TrimSpace(row[idx])
			}
			if v == "" && empty == "" {
				empty = c
			}
			cells[c] = v
		}
		if empty != "" {
			skipped = append(skipped, Skipped{Row: line, Reason: "empty " + empty})
			continue
		}

		doc, err := parseRow(cells)
		if err != nil {
			skipped = append(skipped, Skipped{Row: line, Reason: err.Error()})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

func parseRow(cells map[string]string) (models.YieldDoc, error) {
	year, err := strconv.Atoi(cells["crop_year"])
	if err != nil {
		return models.YieldDoc{}, fmt.Errorf("crop_year: %w", err)
	}

	nums := make(map[string]float64, 6)
	for _, c := range columns[4:] {
		v, err := strconv.ParseFloat(cells[c], 64)
		if err != nil {
			return models.YieldDoc{}, fmt.Errorf("%s: %w", c, err)
		}
		nums[c] = v
	}

	season := cells["season"]
	if alias, ok := seasonAliases[season]; ok {
		season = alias
	}

	doc := models.YieldDoc{
		Crop:           cells["crop"],
		CropYear:       year,
		Season:         season,
		State:          cells["state"],
		Area:           nums["area"],
		Production:     nums["production"],
		AnnualRainfall: nums["annual_rainfall"],
		Fertilizer:     nums["fertilizer"],
		Pesticide:      nums["pesticide"],
		Yield:          nums["yield"],
	}
	return doc, doc.Validate()
}
