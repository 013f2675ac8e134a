package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/okian/cellpulse/internal/domain/report"
	"github.com/okian/cellpulse/pkg/logger"
	"github.com/okian/cellpulse/pkg/metrics"
)

// Batch builds independent reports in parallel, at most batchConcurrency at a
// time. Results are returned in request order. A failing item does not stop
// the others; only cancellation of ctx aborts the batch.
func (s *Service) Batch(ctx context.Context, reqs []report.Request) ([]report.Result, error) {
	if _, err := s.assemblerFor(ctx); err != nil {
		return nil, err
	}
	if len(reqs) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d requests, limit %d", ErrBatchTooLarge, len(reqs), s.maxBatchSize)
	}
	metrics.RecordBatchSize(len(reqs))

	results := make([]report.Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	var failed atomic.Int64
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			metrics.AddBatchInFlight(1)
			defer metrics.AddBatchInFlight(-1)

			b, err := s.build(gctx, req)
			results[i] = report.Result{Index: i, Kind: req.Kind, Bundle: b, Err: err}
			if err != nil {
				failed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch processing: %w", err)
	}

	s.logger.Debug(ctx, "batch complete",
		logger.Int("requests", len(reqs)),
		logger.Int("failed", int(failed.Load())),
	)
	return results, nil
}

func (s *Service) build(ctx context.Context, req report.Request) (any, error) {
	switch req.Kind {
	case report.KindSales:
		if req.Sales == nil {
			return nil, fmt.Errorf("sales request without input: %w", report.ErrInsufficientData)
		}
		return bundle(s.Sales(ctx, *req.Sales))
	case report.KindStaff:
		if req.Staff == nil {
			return nil, fmt.Errorf("staff request without input: %w", report.ErrInsufficientData)
		}
		return bundle(s.Staff(ctx, *req.Staff))
	case report.KindCellsum:
		if req.Cellsum == nil {
			return nil, fmt.Errorf("cellsum request without input: %w", report.ErrInsufficientData)
		}
		return bundle(s.Cellsum(ctx, *req.Cellsum))
	default:
		return nil, fmt.Errorf("%w: %q", report.ErrUnknownKind, req.Kind)
	}
}

// bundle drops typed nil pointers so a failed item carries a nil Bundle.
func bundle[T any](b *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}
