// Package projection extrapolates cumulative achievement linearly to period end.
package projection

import (
	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
)

// Result is a period-end projection.
type Result struct {
	RunRate        float64        `json:"run_rate"`
	PredictedFinal float64        `json:"predicted_final"`
	PredictedPct   metric.Percent `json:"predicted_pct"`
}

// Project extrapolates achieved over the remaining days of dc. The run rate is
// zero before any day has completed; a closed period predicts exactly achieved.
func Project(achieved, target float64, dc model.DateContext) Result {
	var runRate float64
	if dc.DaysCompleted > 0 {
		runRate = achieved / float64(dc.DaysCompleted)
	}
	final := achieved
	if dc.DaysRemaining > 0 {
		final = achieved + runRate*float64(dc.DaysRemaining)
	}
	return Result{
		RunRate:        runRate,
		PredictedFinal: final,
		PredictedPct:   metric.Ratio(final, target),
	}
}

// Totals projects a totals snapshot.
func Totals(t metric.Totals, dc model.DateContext) Result {
	return Project(t.Achieved, t.Target, dc)
}
