package report

import (
	"time"

	"github.com/okian/cellpulse/internal/domain/overlay"
)

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithTargetTable sets the strategic target table used by the overlay.
func WithTargetTable(t overlay.TargetTable) Option {
	return func(a *Assembler) {
		if t != nil {
			a.targets = t
		}
	}
}

// WithSentinel sets the placeholder entity passed over by executive selection.
func WithSentinel(name string) Option {
	return func(a *Assembler) {
		a.sentinel = name
	}
}

// WithClock overrides the time source stamped on bundles.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIDGenerator overrides the report id generator.
func WithIDGenerator(next func() string) Option {
	return func(a *Assembler) {
		if next != nil {
			a.nextID = next
		}
	}
}
