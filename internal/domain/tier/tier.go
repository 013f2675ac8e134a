// Package tier holds the threshold tables and the classifier that maps a
// percentage onto a ranked tier of one scoring dimension.
package tier

import (
	"math"

	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
)

// UnscoredName names the sentinel tier for NotApplicable percentages.
const UnscoredName = "Unscored"

// Dimension identifies a scoring dimension.
type Dimension string

// Known dimensions.
const (
	DimensionBrandRisk          Dimension = "brand_risk"
	DimensionEmployeeStatus     Dimension = "employee_status"
	DimensionStrategicAlignment Dimension = "strategic_alignment"
	DimensionOutlook            Dimension = "outlook"
)

// Tier is a named classification bucket. Rank 1 is best; ranks are dense
// within a dimension.
type Tier struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Band matches percentages above Lower, or at Lower when Inclusive.
type Band struct {
	Lower     float64
	Inclusive bool
	Tier      Tier
}

func (b Band) matches(pct float64) bool {
	if b.Inclusive {
		return pct >= b.Lower
	}
	return pct > b.Lower
}

// Table is a descending list of bands for one dimension.
type Table struct {
	Dimension Dimension
	Bands     []Band
}

// Classify returns the first band matching pct, top-down. NotApplicable maps
// to Unscored without any threshold comparison.
func (t Table) Classify(pct metric.Percent) Tier {
	v, ok := pct.Value()
	if !ok {
		return t.Unscored()
	}
	for _, b := range t.Bands {
		if b.matches(v) {
			return b.Tier
		}
	}
	// Tables end in an open lower band; only reachable with a malformed table.
	return t.Unscored()
}

// Unscored is the sentinel tier ranked after every real tier.
func (t Table) Unscored() Tier {
	return Tier{Name: UnscoredName, Rank: len(t.Bands) + 1}
}

// Tiers lists the real tiers best-first.
func (t Table) Tiers() []Tier {
	out := make([]Tier, len(t.Bands))
	for i, b := range t.Bands {
		out[i] = b.Tier
	}
	return out
}

var floor = math.Inf(-1)

// BrandRisk classifies brand achievement.
var BrandRisk = Table{
	Dimension: DimensionBrandRisk,
	Bands: []Band{
		{Lower: 100, Inclusive: false, Tier: Tier{Name: "Extra-Ordinary", Rank: 1}},
		{Lower: 91, Inclusive: true, Tier: Tier{Name: "Excellent", Rank: 2}},
		{Lower: 61, Inclusive: true, Tier: Tier{Name: "Good", Rank: 3}},
		{Lower: 31, Inclusive: true, Tier: Tier{Name: "Average", Rank: 4}},
		{Lower: floor, Inclusive: true, Tier: Tier{Name: "Very-High", Rank: 5}},
	},
}

// EmployeeStatus classifies salesperson achievement.
var EmployeeStatus = Table{
	Dimension: DimensionEmployeeStatus,
	Bands: []Band{
		{Lower: 91, Inclusive: true, Tier: Tier{Name: "Top", Rank: 1}},
		{Lower: 61, Inclusive: true, Tier: Tier{Name: "Performing", Rank: 2}},
		{Lower: 31, Inclusive: true, Tier: Tier{Name: "NeedsImprovement", Rank: 3}},
		{Lower: floor, Inclusive: true, Tier: Tier{Name: "ImmediateCorrection", Rank: 4}},
	},
}

// StrategicAlignment classifies overlay achievement against strategic targets.
var StrategicAlignment = Table{
	Dimension: DimensionStrategicAlignment,
	Bands: []Band{
		{Lower: 100, Inclusive: true, Tier: Tier{Name: "Aligned", Rank: 1}},
		{Lower: 85, Inclusive: true, Tier: Tier{Name: "SlightGap", Rank: 2}},
		{Lower: 70, Inclusive: true, Tier: Tier{Name: "Misaligned", Rank: 3}},
		{Lower: floor, Inclusive: true, Tier: Tier{Name: "HighRisk", Rank: 4}},
	},
}

// Outlook classifies the predicted month-end percentage.
var Outlook = Table{
	Dimension: DimensionOutlook,
	Bands: []Band{
		{Lower: 100, Inclusive: true, Tier: Tier{Name: "Exceeded", Rank: 1}},
		{Lower: 85, Inclusive: true, Tier: Tier{Name: "Achievable", Rank: 2}},
		{Lower: 75, Inclusive: true, Tier: Tier{Name: "AtRisk", Rank: 3}},
		{Lower: floor, Inclusive: true, Tier: Tier{Name: "Critical", Rank: 4}},
	},
}

// ClassifiedRecord is a record with its percentage and tier in one dimension.
type ClassifiedRecord struct {
	model.PerformanceRecord
	Pct  metric.Percent `json:"achievement_pct"`
	Tier Tier           `json:"tier"`
}

// TierRank returns the tier's rank.
func (c ClassifiedRecord) TierRank() int { return c.Tier.Rank }

// ClassifyAll computes percentage and tier for every record, in input order.
func ClassifyAll(records []model.PerformanceRecord, t Table) []ClassifiedRecord {
	out := make([]ClassifiedRecord, len(records))
	for i, r := range records {
		pct := metric.Achievement(r)
		out[i] = ClassifiedRecord{PerformanceRecord: r, Pct: pct, Tier: t.Classify(pct)}
	}
	return out
}
