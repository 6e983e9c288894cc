package main

import (
	"fmt"
	"net/http"
	"time"

	"yieldboard/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleReport exports the dashboard views for the posted filter as XLSX.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	_, summary, ok := a.loadSummary(w, r)
	if !ok {
		return
	}

	f, err := report.Build(summary)
	if err != nil {
		a.log.WithRequest(r).WithField("error", err.Error()).Error("report build failed")
		writeError(w, http.StatusInternalServerError, "failed to build report", "")
		return
	}
	defer f.Close()

	name := fmt.Sprintf("yield_report_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := f.Write(w); err != nil {
		a.log.WithRequest(r).WithField("error", err.Error()).Error("report write failed")
	}
}
