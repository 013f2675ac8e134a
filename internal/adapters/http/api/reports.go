package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/cellpulse/internal/domain/report"
)

const maxReportBodyBytes = 8 << 20

// ReportsHandler handles POST /reports/* requests.
type ReportsHandler struct {
	deps Dependencies
	now  func() time.Time
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps Dependencies, now func() time.Time) *ReportsHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportsHandler{deps: deps, now: now}
}

// HandleSales handles POST /reports/sales requests.
func (h *ReportsHandler) HandleSales(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_sales"
	var req salesRequest
	if !decode(w, r, op, &req) {
		return
	}
	in, err := req.input(h.now)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := h.deps.Sales(r.Context(), in)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HandleStaff handles POST /reports/staff requests.
func (h *ReportsHandler) HandleStaff(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_staff"
	var req staffRequest
	if !decode(w, r, op, &req) {
		return
	}
	in, err := req.input(h.now)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := h.deps.Staff(r.Context(), in)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HandleCellsum handles POST /reports/cellsum requests.
func (h *ReportsHandler) HandleCellsum(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_cellsum"
	var req cellsumRequest
	if !decode(w, r, op, &req) {
		return
	}
	in, err := req.input(h.now)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := h.deps.Cellsum(r.Context(), in)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HandleBatch handles POST /reports/batch requests. Item failures are
// reported per item; the response is 200 unless the batch itself fails.
func (h *ReportsHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	var req batchRequest
	if !decode(w, r, op, &req) {
		return
	}
	if len(req.Requests) == 0 {
		writeFailure(w, WrapKind(op, ErrBadRequest, errEmptyBatch))
		return
	}

	reqs := make([]report.Request, len(req.Requests))
	for i, item := range req.Requests {
		rr, err := item.request(h.now)
		if err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, itemError{index: i, err: err}))
			return
		}
		reqs[i] = rr
	}

	results, err := h.deps.Batch(r.Context(), reqs)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	out := make([]batchItemResponse, len(results))
	for i, res := range results {
		item := batchItemResponse{Index: res.Index, Kind: res.Kind, Status: "ok", Bundle: res.Bundle}
		if res.Err != nil {
			_, code := classify(res.Err)
			item.Status = "error"
			item.Bundle = nil
			item.Error = &errorResponse{Code: code, Message: res.Err.Error()}
		}
		out[i] = item
	}
	writeJSON(w, http.StatusOK, out)
}

// decode reads a JSON body into v, writing the error response on failure.
func decode(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReportBodyBytes)).Decode(v); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return false
	}
	return true
}
