package report

import (
	"fmt"

	"github.com/okian/cellpulse/internal/domain/executive"
	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/ranking"
	"github.com/okian/cellpulse/internal/domain/tier"
)

// Staff sub-view names.
const (
	ViewOverall     = "overall"
	ViewHandset     = "handset"
	ViewAccessories = "accessories"
)

// StaffInput is one branch's salesperson sheet.
type StaffInput struct {
	Branch string              `json:"branch"`
	Staff  []model.StaffRecord `json:"staff"`
	Dates  model.DateContext   `json:"date_context"`
}

// StaffView is one ranked scoring sub-view with its effective top performer.
type StaffView struct {
	Name     string                                     `json:"name"`
	Ranked   []tier.ClassifiedRecord                    `json:"ranked"`
	Top      executive.Selection[tier.ClassifiedRecord] `json:"top"`
	RiskArea *tier.ClassifiedRecord                     `json:"risk_area,omitempty"`
}

// StaffBundle is the salesperson performance report.
type StaffBundle struct {
	Header
	Overall     StaffView          `json:"overall"`
	Handset     StaffView          `json:"handset"`
	Accessories StaffView          `json:"accessories"`
	TeamPct     metric.Percent     `json:"team_pct"`
	TeamTier    tier.Tier          `json:"team_tier"`
	Notices     []executive.Notice `json:"notices"`
}

// Staff builds the salesperson report. Each sub-view is ranked and resolved
// for the sentinel independently of the others.
func (a *Assembler) Staff(in StaffInput) (*StaffBundle, error) {
	if len(in.Staff) == 0 {
		return nil, fmt.Errorf("staff report for %q: no staff records: %w", in.Branch, ErrInsufficientData)
	}

	overall := make([]model.PerformanceRecord, len(in.Staff))
	handset := make([]model.PerformanceRecord, len(in.Staff))
	accessories := make([]model.PerformanceRecord, len(in.Staff))
	for i, s := range in.Staff {
		overall[i] = s.Overall()
		handset[i] = s.Handset
		handset[i].Name = s.Name
		accessories[i] = s.Accessories
		accessories[i].Name = s.Name
	}

	b := &StaffBundle{
		Header:      a.header(KindStaff, in.Branch, in.Dates),
		Overall:     a.staffView(ViewOverall, overall),
		Handset:     a.staffView(ViewHandset, handset),
		Accessories: a.staffView(ViewAccessories, accessories),
		Notices:     []executive.Notice{},
	}

	pcts := make([]metric.Percent, len(b.Overall.Ranked))
	for i, r := range b.Overall.Ranked {
		pcts[i] = r.Pct
	}
	b.TeamPct = metric.Mean(pcts)
	b.TeamTier = tier.EmployeeStatus.Classify(b.TeamPct)

	for _, v := range []StaffView{b.Overall, b.Handset, b.Accessories} {
		if v.Top.Notice != nil {
			b.Notices = append(b.Notices, *v.Top.Notice)
		}
	}
	return b, nil
}

func (a *Assembler) staffView(name string, records []model.PerformanceRecord) StaffView {
	ranked := ranking.Records(tier.ClassifyAll(records, tier.EmployeeStatus))
	return StaffView{
		Name:     name,
		Ranked:   ranked,
		Top:      executive.Select(name, ranked, a.sentinel, func(r tier.ClassifiedRecord) string { return r.Name }),
		RiskArea: worst(ranked),
	}
}
