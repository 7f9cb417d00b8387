// Package api exposes the price service over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stockdata/pkg/logger"
	"stockdata/pkg/otel"
	"stockdata/pkg/price"
)

// UserKeyHeader carries the admin secret for DELETE /deleteAll.
const UserKeyHeader = "User-Key"

// Handler serves the price endpoints.
type Handler struct {
	svc *price.Service
	log *logger.Logger
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc *price.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// rangeRequest is the body of POST /getData.
type rangeRequest struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// averageResponse is the body of GET /calculate10DayAverage.
type averageResponse struct {
	Average float64 `json:"10 Day Average"`
}

// fail writes err as a JSON error. invalid replaces the message of
// validation errors so clients get the endpoint's usage hint.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, invalid string) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else if invalid != "" && len(body.Missing) > 0 {
		body.Error = invalid
	}
	writeJSON(w, status, body)
}

// listData returns every record.
// @Summary List records
// @Produce json
// @Success 200 {array} price.Record
// @Router /getData [get]
func (h *Handler) listData(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listData")
	defer span.End()

	ds, err := h.svc.List(ctx)
	if err != nil {
		h.fail(w, r.WithContext(ctx), err, "")
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// getByDate returns the first record with the given date.
// @Summary Get record by date
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} price.Record
// @Failure 404 {object} errorResponse
// @Router /getData/{date} [get]
func (h *Handler) getByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getByDate")
	defer span.End()

	rec, err := h.svc.Get(ctx, mux.Vars(r)["date"])
	if err != nil {
		status, body := statusFor(err)
		if status == http.StatusNotFound {
			writeError(w, status, "Data cannot be found")
			return
		}
		if status >= http.StatusInternalServerError {
			h.log.Error(ctx, "get record", "error", err)
		}
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// getRange returns records dated within an inclusive range.
// @Summary Records in date range
// @Accept json
// @Produce json
// @Param range body rangeRequest true "start and end, YYYY-MM-DD"
// @Success 200 {array} price.Record
// @Failure 400 {object} errorResponse
// @Router /getData [post]
func (h *Handler) getRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getRange")
	defer span.End()

	var req rangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Start == nil || req.End == nil {
		writeError(w, http.StatusBadRequest, "Invalid request. Provide start and end date.")
		return
	}
	ds, err := h.svc.Range(ctx, *req.Start, *req.End)
	if err != nil {
		h.fail(w, r.WithContext(ctx), err, "")
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// average returns the trailing average close.
// @Summary Trailing 10 day average of Close
// @Produce json
// @Success 200 {object} averageResponse
// @Failure 422 {object} errorResponse
// @Router /calculate10DayAverage [get]
func (h *Handler) average(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "average")
	defer span.End()

	avg, err := h.svc.Average(ctx)
	if err != nil {
		h.fail(w, r.WithContext(ctx), err, "")
		return
	}
	writeJSON(w, http.StatusOK, averageResponse{Average: avg})
}

// addData appends a record.
// @Summary Append record
// @Accept json
// @Produce json
// @Param record body price.Record true "All seven fields"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Router /addData [post]
func (h *Handler) addData(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addData")
	defer span.End()

	const invalid = "Invalid request. Provide Date, Open, High, Low, Close, Adj Close, and Volume."
	var p price.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}
	if err := h.svc.Add(ctx, p); err != nil {
		h.fail(w, r.WithContext(ctx), err, invalid)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Added successfully!"})
}

// updateData merges the body into the record with the body's Date.
// @Summary Update record
// @Accept json
// @Produce json
// @Param patch body price.Patch true "Date plus fields to overwrite"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /updateData [put]
func (h *Handler) updateData(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateData")
	defer span.End()

	const invalid = "Invalid request. Provide a date."
	var p price.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}
	date, err := h.svc.Update(ctx, p)
	if err != nil {
		h.fail(w, r.WithContext(ctx), err, invalid)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Data for " + date + " updated successfully."})
}

// deleteData removes the first record with the body's Date.
// @Summary Delete record
// @Accept json
// @Produce json
// @Param target body price.Patch true "Date to delete"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /deleteData [delete]
func (h *Handler) deleteData(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteData")
	defer span.End()

	const invalid = "Invalid request. Provide a date."
	var p price.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Date == nil {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}
	date := *p.Date
	if err := h.svc.Delete(ctx, date); err != nil {
		h.fail(w, r.WithContext(ctx), err, invalid)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Data for " + date + " deleted successfully."})
}

// deleteAll clears the dataset when User-Key matches the admin secret.
// @Summary Delete every record
// @Produce json
// @Param User-Key header string true "Admin key"
// @Success 200 {object} messageResponse
// @Failure 401 {object} errorResponse
// @Router /deleteAll [delete]
func (h *Handler) deleteAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteAll")
	defer span.End()

	if err := h.svc.DeleteAll(ctx, r.Header.Get(UserKeyHeader)); err != nil {
		h.fail(w, r.WithContext(ctx), err, "")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Access granted. Successful deletion."})
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
