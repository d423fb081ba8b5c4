package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"constituency_site/config"
	"constituency_site/models"
	"constituency_site/store"
	"constituency_site/validation"
)

type searchRequest struct {
	Block       string `json:"block"`
	Panchayat   string `json:"panchayat"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

type searchResponse struct {
	Records []models.Record `json:"records"`
	Count   int             `json:"count"`
}

// CreateRecord validates a submission and persists it as a new record.
func CreateRecord(w http.ResponseWriter, r *http.Request) {
	var input models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	rec, errs := validation.ValidateRecord(input)
	if errs != nil {
		sendJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": errs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	id, err := recordStore.Create(ctx, rec)
	if err != nil {
		logger.Error("create record failed", zap.Error(err))
		sendStoreError(w, err)
		return
	}

	config.ClearRecordCache()
	sendJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateRecord validates a submission and replaces every field of the
// record with the given id. An unknown id is a successful no-op.
func UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		sendErrorResponse(w, "Record id is required", http.StatusBadRequest)
		return
	}

	var input models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	rec, errs := validation.ValidateRecord(input)
	if errs != nil {
		sendJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": errs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := recordStore.Update(ctx, id, rec); err != nil {
		logger.Error("update record failed", zap.String("id", id), zap.Error(err))
		sendStoreError(w, err)
		return
	}

	config.ClearRecordCache()
	sendJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteRecord removes the record with the given id. Deleting an id that
// does not exist succeeds.
func DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		sendErrorResponse(w, "Record id is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := recordStore.Delete(ctx, id); err != nil {
		logger.Error("delete record failed", zap.String("id", id), zap.Error(err))
		sendStoreError(w, err)
		return
	}

	config.ClearRecordCache()
	w.WriteHeader(http.StatusNoContent)
}

// SearchRecords returns the records matching the posted filter, newest
// first. A failing store is reported as an error status, never as an empty
// result set.
func SearchRecords(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	filter := store.Filter{
		Block:       req.Block,
		Panchayat:   req.Panchayat,
		Name:        req.Name,
		Designation: req.Designation,
	}

	records, err := queryWithCache(r.Context(), filter)
	if err != nil {
		logger.Error("search records failed", zap.Error(err))
		sendStoreError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, searchResponse{Records: records, Count: len(records)})
}

// queryWithCache serves repeated browse queries from the record cache.
// Mutating handlers flush the cache, so a hit is at worst TTL-stale.
func queryWithCache(ctx context.Context, filter store.Filter) ([]models.Record, error) {
	key := config.GetCacheKey("records", filter.Block, filter.Panchayat, filter.Name, filter.Designation)

	if config.RecordCache != nil {
		if cached, found := config.RecordCache.Get(key); found {
			if records, ok := cached.([]models.Record); ok {
				return records, nil
			}
		}
	}

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	records, err := recordStore.Query(queryCtx, filter)
	if err != nil {
		return nil, err
	}

	if config.RecordCache != nil {
		config.RecordCache.SetDefault(key, records)
	}
	return records, nil
}
