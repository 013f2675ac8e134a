package report

import (
	"fmt"

	"github.com/okian/cellpulse/internal/domain/conflict"
	"github.com/okian/cellpulse/internal/domain/contribution"
	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/overlay"
	"github.com/okian/cellpulse/internal/domain/projection"
	"github.com/okian/cellpulse/internal/domain/ranking"
	"github.com/okian/cellpulse/internal/domain/tier"
)

// CellsumInput holds every branch's brand sheet for the combined report.
type CellsumInput struct {
	Branches []model.BranchRecords `json:"branches"`
	Dates    model.DateContext     `json:"date_context"`
}

// CellsumBundle is the combined multi-branch report with its strategic overlay.
type CellsumBundle struct {
	Header
	Ranked               []tier.ClassifiedRecord `json:"ranked"`
	NotApplicable        []string                `json:"not_applicable"`
	Totals               metric.Totals           `json:"totals"`
	Status               tier.Tier               `json:"status"`
	Projection           projection.Result       `json:"projection"`
	Contributions        contribution.Analysis   `json:"contributions"`
	Overlay              overlay.Result          `json:"overlay"`
	OverlayContributions contribution.Analysis   `json:"overlay_contributions"`
	Conflict             conflict.Report         `json:"conflict"`
}

// Cellsum builds the combined report: brands are summed across branches by
// name, scored on brand risk, then re-scored by the strategic overlay.
func (a *Assembler) Cellsum(in CellsumInput) (*CellsumBundle, error) {
	var n int
	for _, b := range in.Branches {
		n += len(b.Records)
	}
	if n == 0 {
		return nil, fmt.Errorf("cellsum report: no brand records across %d branches: %w", len(in.Branches), ErrInsufficientData)
	}
	if len(a.targets) == 0 {
		return nil, fmt.Errorf("cellsum report: strategic target table is empty: %w", ErrInsufficientData)
	}

	sheets := make([][]model.PerformanceRecord, len(in.Branches))
	for i, b := range in.Branches {
		sheets[i] = b.Records
	}
	universe := model.GroupByName(sheets...)

	ranked := ranking.Records(tier.ClassifyAll(universe, tier.BrandRisk))
	totals := metric.Sum(universe)
	primary := contribution.Analyze(contribution.Achieved(in.Branches))

	matched := make([]contribution.Amount, len(in.Branches))
	for i, b := range in.Branches {
		matched[i] = contribution.Amount{Branch: b.Branch, Amount: overlay.MatchedAchievement(b.Records, a.targets)}
	}
	strategic := contribution.Analyze(matched)

	return &CellsumBundle{
		Header:               a.header(KindCellsum, "", in.Dates),
		Ranked:               ranked,
		NotApplicable:        notApplicable(ranked),
		Totals:               totals,
		Status:               tier.BrandRisk.Classify(totals.Pct),
		Projection:           projection.Totals(totals, in.Dates),
		Contributions:        primary,
		Overlay:              overlay.Apply(universe, a.targets, in.Dates),
		OverlayContributions: strategic,
		Conflict:             conflict.Detect(primary, strategic),
	}, nil
}
