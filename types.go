package main

import (
	"encoding/json"
	"net/http"

	"yieldboard/analytics"
	"yieldboard/models"
)

// Request/response DTOs. Keep them minimal and explicit.

type errorResp struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type calculations struct {
	TotalProduction float64 `json:"total_production"`
	ItemCount       int     `json:"item_count"`
}

type dashboardResp struct {
	Data            []models.YieldRecord           `json:"data"`
	Calculations    calculations                   `json:"calculations"`
	SeasonTotals    models.SeasonTotals            `json:"season_totals"`
	StatesTotals    []models.StateTotal            `json:"states_totals"`
	YearlyCropStats map[int][]models.CropYearStats `json:"yearly_crop_stats"`
	Metrics         models.Metrics                 `json:"metrics"`
	CropsTotals     []models.CropTotal             `json:"crops_totals"`
}

func newDashboardResp(data []models.YieldRecord, s analytics.Summary) dashboardResp {
	if data == nil {
		data = []models.YieldRecord{}
	}
	return dashboardResp{
		Data: data,
		Calculations: calculations{
			TotalProduction: s.TotalProduction,
			ItemCount:       len(data),
		},
		SeasonTotals:    s.SeasonTotals,
		StatesTotals:    s.StatesTotals,
		YearlyCropStats: s.YearlyCropStats,
		Metrics:         s.Metrics,
		CropsTotals:     s.CropsTotals,
	}
}

// yieldReq carries a full yield record; pointers tell absent fields apart.
type yieldReq struct {
	Crop           *string  `json:"crop"`
	CropYear       *int     `json:"crop_year"`
	Season         *string  `json:"season"`
	State          *string  `json:"state"`
	Area           *float64 `json:"area"`
	Production     *float64 `json:"production"`
	AnnualRainfall *float64 `json:"annual_rainfall"`
	Fertilizer     *float64 `json:"fertilizer"`
	Pesticide      *float64 `json:"pesticide"`
	Yield          *float64 `json:"yield"`
}

// doc converts the request, naming the first missing field.
func (q yieldReq) doc() (models.YieldDoc, error) {
	missing := func(name string) (models.YieldDoc, error) {
		return models.YieldDoc{}, &fieldError{Field: name}
	}
	switch {
	case q.Crop == nil:
		return missing("crop")
	case q.CropYear == nil:
		return missing("crop_year")
	case q.Season == nil:
		return missing("season")
	case q.State == nil:
		return missing("state")
	case q.Area == nil:
		return missing("area")
	case q.Production == nil:
		return missing("production")
	case q.AnnualRainfall == nil:
		return missing("annual_rainfall")
	case q.Fertilizer == nil:
		return missing("fertilizer")
	case q.Pesticide == nil:
		return missing("pesticide")
	case q.Yield == nil:
		return missing("yield")
	}
	d := models.YieldDoc{
		Crop:           *q.Crop,
		CropYear:       *q.CropYear,
		Season:         *q.Season,
		State:          *q.State,
		Area:           *q.Area,
		Production:     *q.Production,
		AnnualRainfall: *q.AnnualRainfall,
		Fertilizer:     *q.Fertilizer,
		Pesticide:      *q.Pesticide,
		Yield:          *q.Yield,
	}
	return d, d.Validate()
}

type fieldError struct {
	Field string
}

func (e *fieldError) Error() string { return e.Field + " is required" }

type updateYieldReq struct {
	Crop       string   `json:"crop"`
	CropYear   int      `json:"crop_year"`
	UpdateData yieldReq `json:"update_data"`
}

type createdResp struct {
	ID string `json:"id"`
}

type modifiedResp struct {
	ModifiedCount int64 `json:"modified_count"`
}

type pageMeta struct {
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	Size       int   `json:"size"`
	Page       int   `json:"page"`
}

type yieldPageResp struct {
	Data       []models.YieldRecord `json:"data"`
	Pagination pageMeta             `json:"pagination"`
}

func newPageMeta(total int64, page, size int) pageMeta {
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return pageMeta{Total: total, TotalPages: pages, Size: size, Page: page}
}

// writeJSON encodes v before touching the response so an unencodable value
// turns into a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResp{Error: "failed to encode response", Details: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResp{Error: msg, Details: details})
}
