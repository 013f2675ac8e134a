package service

import (
	"time"

	"github.com/okian/cellpulse/internal/domain/overlay"
	"github.com/okian/cellpulse/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTargetTable sets the strategic target table used by the overlay.
func WithTargetTable(t overlay.TargetTable) Option {
	return func(s *Service) {
		if t != nil {
			s.targets = t
		}
	}
}

// WithSentinel sets the administrative entity skipped in staff views.
func WithSentinel(name string) Option {
	return func(s *Service) {
		s.sentinel = name
	}
}

// WithBranches sets the default branch names of the combined report.
func WithBranches(names ...string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.branches = names
		}
	}
}

// WithBatchConcurrency bounds the reports built in parallel by Batch.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithMaxBatchSize caps the number of requests accepted by Batch.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithClock overrides the time source stamped on bundles.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the report id generator.
func WithIDGenerator(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.nextID = next
		}
	}
}
