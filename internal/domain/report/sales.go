package report

import (
	"fmt"

	"github.com/okian/cellpulse/internal/domain/action"
	"github.com/okian/cellpulse/internal/domain/contribution"
	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/overlay"
	"github.com/okian/cellpulse/internal/domain/projection"
	"github.com/okian/cellpulse/internal/domain/ranking"
	"github.com/okian/cellpulse/internal/domain/tier"
)

// SalesInput is one branch's brand sheet.
type SalesInput struct {
	Branch  string                    `json:"branch"`
	Records []model.PerformanceRecord `json:"records"`
	Dates   model.DateContext         `json:"date_context"`
}

// SalesBundle is the single-branch brand performance report.
type SalesBundle struct {
	Header
	Ranked        []tier.ClassifiedRecord `json:"ranked"`
	NotApplicable []string                `json:"not_applicable"`
	Totals        metric.Totals           `json:"totals"`
	CompanyTier   tier.Tier               `json:"company_tier"`
	BiggestRisk   *tier.ClassifiedRecord  `json:"biggest_risk,omitempty"`
	ActionPlan    []action.Item           `json:"action_plan"`
	Projection    projection.Result       `json:"projection"`
	Outlook       tier.Tier               `json:"outlook"`
	BrandMix      contribution.Analysis   `json:"brand_mix"`
	Overlay       *overlay.Result         `json:"overlay,omitempty"`
}

// Sales builds the brand report for one branch. The overlay is attached only
// when a strategic target table is configured.
func (a *Assembler) Sales(in SalesInput) (*SalesBundle, error) {
	if len(in.Records) == 0 {
		return nil, fmt.Errorf("sales report for %q: no brand records: %w", in.Branch, ErrInsufficientData)
	}

	ranked := ranking.Records(tier.ClassifyAll(in.Records, tier.BrandRisk))
	totals := metric.Sum(in.Records)
	proj := projection.Totals(totals, in.Dates)

	b := &SalesBundle{
		Header:        a.header(KindSales, in.Branch, in.Dates),
		Ranked:        ranked,
		NotApplicable: notApplicable(ranked),
		Totals:        totals,
		CompanyTier:   tier.BrandRisk.Classify(totals.Pct),
		BiggestRisk:   worst(ranked),
		ActionPlan:    action.Plan(ranked, in.Dates),
		Projection:    proj,
		Outlook:       tier.Outlook.Classify(proj.PredictedPct),
		BrandMix:      contribution.Analyze(contribution.Records(in.Records)),
	}
	if len(a.targets) > 0 {
		ov := overlay.Apply(in.Records, a.targets, in.Dates)
		b.Overlay = &ov
	}
	return b, nil
}
