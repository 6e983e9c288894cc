package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"yieldboard/analytics"
	"yieldboard/models"
	"yieldboard/store"
)

// loadSummary decodes the filter body, fetches the matching records and
// computes every dashboard view. It writes the error response itself and
// returns ok=false on failure.
func (a *App) loadSummary(w http.ResponseWriter, r *http.Request) ([]models.YieldRecord, analytics.Summary, bool) {
	var c store.Criteria
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON filter object", err.Error())
		return nil, analytics.Summary{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	records, err := a.records.Find(ctx, c)
	if err != nil {
		a.log.WithRequest(r).WithField("error", err.Error()).Error("dashboard fetch failed")
		writeError(w, http.StatusInternalServerError, "failed to process request", err.Error())
		return nil, analytics.Summary{}, false
	}

	summary, err := analytics.Summarize(records)
	if err != nil {
		if errors.Is(err, analytics.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid data", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "failed to process request", err.Error())
		}
		return nil, analytics.Summary{}, false
	}
	return records, summary, true
}

// handleDashboard returns the filtered records, capped at the configured
// limit, together with all views computed over the full match.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	records, summary, ok := a.loadSummary(w, r)
	if !ok {
		return
	}
	data := records
	if len(data) > a.cfg.DashboardLimit {
		data = data[:a.cfg.DashboardLimit]
	}
	writeJSON(w, http.StatusOK, newDashboardResp(data, summary))
}

// handleFilters returns the selectable values for every filter field.
func (a *App) handleFilters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	writeJSON(w, http.StatusOK, a.catalog.Options(ctx))
}

// handleMe echoes the authenticated caller.
func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mustPrincipal(r))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.mongo.Ping(ctx, readpref.Primary()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "mongo unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
