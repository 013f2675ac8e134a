// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/cellpulse/internal/adapters/ingest"
	service "github.com/okian/cellpulse/internal/app"
	"github.com/okian/cellpulse/internal/domain/report"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Sales(ctx context.Context, in report.SalesInput) (*report.SalesBundle, error)
	Staff(ctx context.Context, in report.StaffInput) (*report.StaffBundle, error)
	Cellsum(ctx context.Context, in report.CellsumInput) (*report.CellsumBundle, error)
	Batch(ctx context.Context, reqs []report.Request) ([]report.Result, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	reportsHandler *ReportsHandler
	ingestHandler  *IngestHandler
}

// Option configures the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxUploadBytes int64
	now            func() time.Time
}

// WithMaxUploadMB caps multipart uploads accepted by POST /ingest/xlsx.
func WithMaxUploadMB(mb int) Option {
	return func(o *serverOptions) {
		if mb > 0 {
			o.maxUploadBytes = int64(mb) << 20
		}
	}
}

// WithClock sets the clock used when a request carries no date.
func WithClock(now func() time.Time) Option {
	return func(o *serverOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{maxUploadBytes: defaultMaxUploadBytes, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		reportsHandler: NewReportsHandler(deps, o.now),
		ingestHandler:  NewIngestHandler(o.maxUploadBytes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/reports/sales", MetricsMiddleware(s.reportsHandler.HandleSales, "reports_sales"))
	mux.HandleFunc("/reports/staff", MetricsMiddleware(s.reportsHandler.HandleStaff, "reports_staff"))
	mux.HandleFunc("/reports/cellsum", MetricsMiddleware(s.reportsHandler.HandleCellsum, "reports_cellsum"))
	mux.HandleFunc("/reports/batch", MetricsMiddleware(s.reportsHandler.HandleBatch, "reports_batch"))
	mux.HandleFunc("/ingest/xlsx", MetricsMiddleware(s.ingestHandler.HandleXLSX, "ingest_xlsx"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeInsufficientData = "insufficient_data"
	codeInvalidSheet     = "invalid_sheet"
	codeTooLarge         = "payload_too_large"
	codeUnavailable      = "unavailable"
	codeInternal         = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err onto a status and code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes), errors.Is(err, ErrPayloadTooBig), errors.Is(err, service.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge, codeTooLarge
	case errors.Is(err, ErrBadRequest), errors.Is(err, report.ErrUnknownKind):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, ErrUnsupported):
		return http.StatusUnsupportedMediaType, codeBadRequest
	case errors.Is(err, ingest.ErrOpen), errors.Is(err, ingest.ErrNoSheet), errors.Is(err, ingest.ErrMissingColumn):
		return http.StatusBadRequest, codeInvalidSheet
	case errors.Is(err, report.ErrInsufficientData):
		return http.StatusUnprocessableEntity, codeInsufficientData
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
