package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/cellpulse/internal/adapters/ingest"
)

const defaultMaxUploadBytes = 10 << 20

// IngestHandler parses uploaded workbooks into typed records.
type IngestHandler struct {
	maxBytes int64
}

// NewIngestHandler creates a new ingest handler capped at maxBytes.
func NewIngestHandler(maxBytes int64) *IngestHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &IngestHandler{maxBytes: maxBytes}
}

type ingestResponse struct {
	Kind    string `json:"kind"`
	Count   int    `json:"count"`
	Records any    `json:"records,omitempty"`
	Staff   any    `json:"staff,omitempty"`
}

// HandleXLSX handles POST /ingest/xlsx?kind=brand|staff. The workbook is
// read from the multipart field "file".
func (h *IngestHandler) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_ingest"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = ingest.SheetBrand
	}
	if kind != ingest.SheetBrand && kind != ingest.SheetStaff {
		writeFailure(w, WrapKind(op, ErrBadRequest, fmt.Errorf("kind must be %q or %q", ingest.SheetBrand, ingest.SheetStaff)))
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeFailure(w, NewKind(op, ErrUnsupported))
		return
	}
	if r.ContentLength > h.maxBytes {
		writeFailure(w, NewKind(op, ErrPayloadTooBig))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	resp := ingestResponse{Kind: kind}
	switch kind {
	case ingest.SheetStaff:
		staff, err := ingest.ReadStaff(data)
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		resp.Count, resp.Staff = len(staff), staff
	default:
		records, err := ingest.ReadBrand(data)
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		resp.Count, resp.Records = len(records), records
	}
	writeJSON(w, http.StatusOK, resp)
}
