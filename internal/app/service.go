// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the report CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/overlay"
	"github.com/okian/cellpulse/internal/domain/report"
	"github.com/okian/cellpulse/pkg/logger"
	"github.com/okian/cellpulse/pkg/metrics"
)

// Error reasons used in metrics labels.
const (
	reasonInsufficientData = "insufficient_data"
	reasonCanceled         = "canceled"
	reasonInternal         = "internal"
)

// Service builds report bundles for the API and the CLI.
type Service struct {
	mu sync.RWMutex

	assembler *report.Assembler

	// Configuration
	targets          overlay.TargetTable
	sentinel         string
	branches         []string
	batchConcurrency int
	maxBatchSize     int
	now              func() time.Time
	nextID           func() string

	// State
	started   bool
	startedAt time.Time
	generated map[report.Kind]int
	failed    map[report.Kind]int

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		targets:          overlay.TargetTable{},
		sentinel:         report.DefaultSentinel,
		branches:         []string{"CellPoint 1", "CellPoint 2"},
		batchConcurrency: runtime.NumCPU(),
		maxBatchSize:     64,
		generated:        make(map[report.Kind]int),
		failed:           make(map[report.Kind]int),
		logger:           nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the report assembler. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.assembler = report.NewAssembler(
		report.WithTargetTable(s.targets),
		report.WithSentinel(s.sentinel),
		report.WithClock(s.now),
		report.WithIDGenerator(s.nextID),
	)
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "report service started",
		logger.Int("strategicBrands", len(s.targets)),
		logger.String("sentinel", s.sentinel),
		logger.Int("batchConcurrency", s.batchConcurrency),
		logger.Int("maxBatchSize", s.maxBatchSize),
	)
	return nil
}

// Stop marks the service as stopped; in-flight reports finish normally.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "report service stopped")
}

// Branches returns the configured branch names in order.
func (s *Service) Branches() []string {
	return append([]string(nil), s.branches...)
}

// Sales builds the single-branch brand report.
func (s *Service) Sales(ctx context.Context, in report.SalesInput) (*report.SalesBundle, error) {
	a, err := s.assemblerFor(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	b, err := a.Sales(in)
	if err != nil {
		return nil, s.fail(ctx, report.KindSales, err)
	}

	s.succeed(ctx, report.KindSales, start, len(b.Ranked), len(b.NotApplicable))
	if b.Overlay != nil {
		s.excluded(ctx, report.KindSales, b.Overlay.Excluded)
	}
	return b, nil
}

// Staff builds the salesperson report.
func (s *Service) Staff(ctx context.Context, in report.StaffInput) (*report.StaffBundle, error) {
	a, err := s.assemblerFor(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	b, err := a.Staff(in)
	if err != nil {
		return nil, s.fail(ctx, report.KindStaff, err)
	}

	var na int
	for _, r := range b.Overall.Ranked {
		if r.Pct.IsNA() {
			na++
		}
	}
	s.succeed(ctx, report.KindStaff, start, len(b.Overall.Ranked), na)
	if len(b.Notices) > 0 {
		metrics.RecordSentinelNotices(len(b.Notices))
		for _, n := range b.Notices {
			s.logger.Info(ctx, "sentinel ranked first", logger.String("view", n.View), logger.String("sentinel", n.Sentinel))
		}
	}
	return b, nil
}

// Cellsum builds the combined multi-branch report. Branches without a name
// take the configured branch name at the same position.
func (s *Service) Cellsum(ctx context.Context, in report.CellsumInput) (*report.CellsumBundle, error) {
	a, err := s.assemblerFor(ctx)
	if err != nil {
		return nil, err
	}
	in.Branches = s.nameBranches(in.Branches)

	start := time.Now()
	b, err := a.Cellsum(in)
	if err != nil {
		return nil, s.fail(ctx, report.KindCellsum, err)
	}

	s.succeed(ctx, report.KindCellsum, start, len(b.Ranked), len(b.NotApplicable))
	s.excluded(ctx, report.KindCellsum, b.Overlay.Excluded)
	if b.Conflict.Conflict {
		metrics.RecordConflict()
		s.logger.Info(ctx, "strategic conflict detected",
			logger.String("primaryCarrier", b.Conflict.PrimaryCarrier),
			logger.String("strategicCarrier", b.Conflict.StrategicCarrier),
		)
	}
	return b, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	generated := make(map[string]int, len(s.generated))
	for k, v := range s.generated {
		generated[string(k)] = v
	}
	failed := make(map[string]int, len(s.failed))
	for k, v := range s.failed {
		failed[string(k)] = v
	}

	stats := map[string]interface{}{
		"started":          s.started,
		"reportsGenerated": generated,
		"reportsFailed":    failed,
		"strategicBrands":  len(s.targets),
		"branches":         s.Branches(),
		"sentinel":         s.sentinel,
		"batchConcurrency": s.batchConcurrency,
		"maxBatchSize":     s.maxBatchSize,
	}
	if s.started {
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
	}
	return stats
}

func (s *Service) assemblerFor(ctx context.Context) (*report.Assembler, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.assembler, nil
}

func (s *Service) nameBranches(in []model.BranchRecords) []model.BranchRecords {
	out := make([]model.BranchRecords, len(in))
	for i, b := range in {
		if b.Branch == "" && i < len(s.branches) {
			b.Branch = s.branches[i]
		}
		if b.Branch == "" {
			b.Branch = fmt.Sprintf("Branch %d", i+1)
		}
		out[i] = b
	}
	return out
}

func (s *Service) succeed(ctx context.Context, kind report.Kind, start time.Time, records, na int) {
	elapsed := time.Since(start)
	metrics.RecordReportGenerated(string(kind))
	metrics.RecordReportLatency(string(kind), float64(elapsed.Microseconds())/1000)
	metrics.RecordRecordsClassified(string(kind), records)
	if na > 0 {
		metrics.RecordNotApplicable(string(kind), na)
	}

	s.mu.Lock()
	s.generated[kind]++
	s.mu.Unlock()

	s.logger.Debug(ctx, "report generated",
		logger.String("kind", string(kind)),
		logger.Int("records", records),
		logger.Int("notApplicable", na),
		logger.Any("elapsed", elapsed),
	)
}

func (s *Service) fail(ctx context.Context, kind report.Kind, err error) error {
	reason := reasonInternal
	switch {
	case errors.Is(err, report.ErrInsufficientData):
		reason = reasonInsufficientData
		s.logger.Warn(ctx, "insufficient data for report", logger.String("kind", string(kind)), logger.Error(err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		reason = reasonCanceled
	default:
		s.logger.Error(ctx, "report failed", logger.String("kind", string(kind)), logger.Error(err))
	}
	metrics.RecordReportError(string(kind), reason)

	s.mu.Lock()
	s.failed[kind]++
	s.mu.Unlock()
	return err
}

func (s *Service) excluded(ctx context.Context, kind report.Kind, ex []overlay.Excluded) {
	if len(ex) == 0 {
		return
	}
	metrics.RecordOverlayExcluded(len(ex))
	names := make([]string, len(ex))
	for i, e := range ex {
		names[i] = e.Name
	}
	s.logger.Info(ctx, "entities excluded from strategic overlay",
		logger.String("kind", string(kind)),
		logger.Int("count", len(ex)),
		logger.Any("names", names),
	)
}
