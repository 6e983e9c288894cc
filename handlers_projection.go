package main

import (
	"context"
	"net/http"
	"time"

	"yieldboard/store"
)

// handleProjection returns predicted yields matching the posted filter,
// capped at the configured projection limit.
func (a *App) handleProjection(w http.ResponseWriter, r *http.Request) {
	c, err := store.DecodeProjectionCriteria(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON filter object", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()
	docs, err := a.projections.Find(ctx, c)
	if err != nil {
		a.log.WithRequest(r).WithField("error", err.Error()).Error("projection fetch failed")
		writeError(w, http.StatusInternalServerError, "failed to process request", "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (a *App) handleProjectionFilters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	writeJSON(w, http.StatusOK, a.projectionCatalog.Options(ctx))
}
