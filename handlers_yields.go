package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"yieldboard/models"
	"yieldboard/store"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// handleCreateYield validates and inserts a single yield record.
func (a *App) handleCreateYield(w http.ResponseWriter, r *http.Request) {
	var req yieldReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err.Error())
		return
	}
	doc, err := req.doc()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid yield record", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id, err := a.records.Insert(ctx, doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, createdResp{ID: id})
}

// handleUpdateYield replaces the record identified by crop and crop_year.
func (a *App) handleUpdateYield(w http.ResponseWriter, r *http.Request) {
	var req updateYieldReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err.Error())
		return
	}
	if req.Crop == "" || req.CropYear == 0 {
		writeError(w, http.StatusBadRequest, "crop and crop_year are required", "")
		return
	}
	doc, err := req.UpdateData.doc()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid yield record", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	n, err := a.records.Update(ctx, req.Crop, req.CropYear, doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		writeError(w, http.StatusNotFound, "not found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, modifiedResp{ModifiedCount: n})
}

// handleListYields pages through records matching the query-string filters.
func (a *App) handleListYields(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := store.CriteriaFromQuery(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad filter", err.Error())
		return
	}
	page, size, err := parsePage(q.Get("page"), q.Get("size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page and size must be positive integers", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	records, total, err := a.records.Page(ctx, c, page, size)
	if err != nil {
		a.log.WithRequest(r).WithField("error", err.Error()).Error("list yields failed")
		writeError(w, http.StatusInternalServerError, "db error", "")
		return
	}
	if records == nil {
		records = []models.YieldRecord{}
	}
	writeJSON(w, http.StatusOK, yieldPageResp{
		Data:       records,
		Pagination: newPageMeta(total, page, size),
	})
}

func parsePage(pageStr, sizeStr string) (int, int, error) {
	page, size := 1, defaultPageSize
	var err error
	if pageStr != "" {
		if page, err = strconv.Atoi(pageStr); err != nil || page < 1 {
			return 0, 0, errors.New("invalid page")
		}
	}
	if sizeStr != "" {
		if size, err = strconv.Atoi(sizeStr); err != nil || size < 1 {
			return 0, 0, errors.New("invalid size")
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, nil
}
