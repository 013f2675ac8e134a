// Package overlay re-scores brands against a fixed strategic target table,
// independently of the primary scoring.
//
// The join is inner: brands missing from the table are left out of the
// overlay's records, totals and carrier, and are reported in Result.Excluded.
package overlay

import (
	"slices"
	"strings"

	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/projection"
	"github.com/okian/cellpulse/internal/domain/ranking"
	"github.com/okian/cellpulse/internal/domain/tier"
)

// TargetTable maps a normalized brand name to its strategic target amount.
type TargetTable map[string]float64

// NewTargetTable normalizes names and scales every amount by unit.
func NewTargetTable(targets map[string]float64, unit float64) TargetTable {
	t := make(TargetTable, len(targets))
	for name, amount := range targets {
		t[model.NormalizeName(name)] += amount * unit
	}
	return t
}

// Lookup returns the target for name, matching case-insensitively.
func (t TargetTable) Lookup(name string) (float64, bool) {
	v, ok := t[model.NormalizeName(name)]
	return v, ok
}

// Names lists the table's brands in ascending order.
func (t TargetTable) Names() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// StrategicRecord is a brand scored against its strategic target. The
// percentage is computed from the projected month-end achievement.
type StrategicRecord struct {
	Name            string         `json:"name"`
	StrategicTarget float64        `json:"strategic_target"`
	Achieved        float64        `json:"achieved"`
	Projected       float64        `json:"projected"`
	StrategicPct    metric.Percent `json:"strategic_pct"`
	StrategicTier   tier.Tier      `json:"strategic_tier"`
}

// Excluded is a brand dropped from the overlay because it has no target.
type Excluded struct {
	Name     string  `json:"name"`
	Achieved float64 `json:"achieved"`
}

// Result is the overlay view of one record set.
type Result struct {
	Records    []StrategicRecord `json:"records"`
	Excluded   []Excluded        `json:"excluded"`
	Totals     metric.Totals     `json:"totals"`
	Projection projection.Result `json:"projection"`
	Tier       tier.Tier         `json:"tier"`
}

// Key is the ranking key of a strategic record.
func Key(r StrategicRecord) ranking.Key {
	return ranking.Key{TierRank: r.StrategicTier.Rank, Pct: r.StrategicPct, Name: r.Name}
}

// Apply joins records to table and scores the matches on the strategic
// alignment dimension. Records whose names normalize equal are merged first.
func Apply(records []model.PerformanceRecord, table TargetTable, dc model.DateContext) Result {
	res := Result{Records: []StrategicRecord{}, Excluded: []Excluded{}}
	merged := mergeNormalized(records)

	for _, r := range merged {
		target, ok := table.Lookup(r.Name)
		if !ok {
			res.Excluded = append(res.Excluded, Excluded{Name: r.Name, Achieved: r.Achieved})
			continue
		}
		projected := projection.Project(r.Achieved, target, dc)
		res.Records = append(res.Records, StrategicRecord{
			Name:            r.Name,
			StrategicTarget: target,
			Achieved:        r.Achieved,
			Projected:       projected.PredictedFinal,
			StrategicPct:    projected.PredictedPct,
			StrategicTier:   tier.StrategicAlignment.Classify(projected.PredictedPct),
		})
		res.Totals.Target += target
		res.Totals.Achieved += r.Achieved
	}

	res.Records = ranking.Rank(res.Records, Key)
	slices.SortFunc(res.Excluded, func(a, b Excluded) int { return strings.Compare(a.Name, b.Name) })

	res.Totals.Pending = res.Totals.Target - res.Totals.Achieved
	res.Totals.Pct = metric.Ratio(res.Totals.Achieved, res.Totals.Target)
	res.Projection = projection.Totals(res.Totals, dc)
	res.Tier = tier.StrategicAlignment.Classify(res.Projection.PredictedPct)
	return res
}

// MatchedAchievement sums the achievement of records present in table.
func MatchedAchievement(records []model.PerformanceRecord, table TargetTable) float64 {
	var sum float64
	for _, r := range records {
		if _, ok := table.Lookup(r.Name); ok {
			sum += r.Achieved
		}
	}
	return sum
}

func mergeNormalized(records []model.PerformanceRecord) []model.PerformanceRecord {
	normalized := make([]model.PerformanceRecord, len(records))
	for i, r := range records {
		r.Name = model.NormalizeName(r.Name)
		normalized[i] = r
	}
	return model.GroupByName(normalized)
}
