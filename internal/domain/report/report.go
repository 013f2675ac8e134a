// Package report assembles the engine outputs of one invocation into a bundle.
//
// An Assembler is immutable after construction; every Build call works on its
// own input and may run concurrently with others.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/overlay"
	"github.com/okian/cellpulse/internal/domain/ranking"
	"github.com/okian/cellpulse/internal/domain/tier"
)

// Kind names a report type.
type Kind string

// Report kinds.
const (
	KindSales   Kind = "sales"
	KindStaff   Kind = "staff"
	KindCellsum Kind = "cellsum"
)

// DefaultSentinel is the administrative entity name skipped in executive views.
const DefaultSentinel = "Admin"

// Header carries metadata shared by every bundle.
type Header struct {
	ReportID    string            `json:"report_id"`
	Kind        Kind              `json:"kind"`
	Branch      string            `json:"branch,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	Dates       model.DateContext `json:"date_context"`
}

// Assembler builds report bundles.
type Assembler struct {
	targets  overlay.TargetTable
	sentinel string
	now      func() time.Time
	nextID   func() string
}

// NewAssembler creates an Assembler with configuration options.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		targets:  overlay.TargetTable{},
		sentinel: DefaultSentinel,
		now:      time.Now,
		nextID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Targets returns the configured strategic target table.
func (a *Assembler) Targets() overlay.TargetTable {
	return a.targets
}

func (a *Assembler) header(kind Kind, branch string, dc model.DateContext) Header {
	return Header{
		ReportID:    a.nextID(),
		Kind:        kind,
		Branch:      branch,
		GeneratedAt: a.now().UTC(),
		Dates:       dc,
	}
}

// notApplicable lists the names of records whose percentage is undefined.
func notApplicable(records []tier.ClassifiedRecord) []string {
	out := []string{}
	for _, r := range records {
		if r.Pct.IsNA() {
			out = append(out, r.Name)
		}
	}
	return out
}

func worst(ranked []tier.ClassifiedRecord) *tier.ClassifiedRecord {
	r, ok := ranking.Worst(ranked, ranking.RecordKey)
	if !ok {
		return nil
	}
	return &r
}
