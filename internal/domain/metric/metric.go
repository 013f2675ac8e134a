// Package metric derives percentage metrics from performance records.
//
// A percentage over a non-positive denominator is NotApplicable, never zero
// or infinity. Callers must branch on Percent.Value.
package metric

import (
	"encoding/json"
	"math"

	"github.com/okian/cellpulse/internal/domain/model"
)

const percentScale = 100

// Percent is an optional percentage.
type Percent struct {
	value float64
	ok    bool
}

// Of wraps a known percentage value.
func Of(v float64) Percent {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Percent{}
	}
	return Percent{value: v, ok: true}
}

// NotApplicable returns the undefined percentage.
func NotApplicable() Percent { return Percent{} }

// Value returns the percentage and whether it is defined.
func (p Percent) Value() (float64, bool) { return p.value, p.ok }

// IsNA reports whether the percentage is undefined.
func (p Percent) IsNA() bool { return !p.ok }

// Or returns the value, or fallback when undefined.
func (p Percent) Or(fallback float64) float64 {
	if !p.ok {
		return fallback
	}
	return p.value
}

// MarshalJSON encodes NotApplicable as null.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.ok {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

// UnmarshalJSON accepts a number or null.
func (p *Percent) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = NotApplicable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Of(v)
	return nil
}

// Ratio returns num/den*100, or NotApplicable when den <= 0.
func Ratio(num, den float64) Percent {
	if den <= 0 {
		return NotApplicable()
	}
	return Of(num / den * percentScale)
}

// Achievement returns the achievement percentage of r.
func Achievement(r model.PerformanceRecord) Percent {
	return Ratio(r.Achieved, r.Target)
}

// Totals holds summed target and achievement over a record set.
type Totals struct {
	Target   float64 `json:"target"`
	Achieved float64 `json:"achieved"`
	Pending  float64 `json:"pending"`
	Pct      Percent `json:"pct"`
}

// Sum totals the records.
func Sum(records []model.PerformanceRecord) Totals {
	var t Totals
	for _, r := range records {
		t.Target += r.Target
		t.Achieved += r.Achieved
	}
	t.Pending = t.Target - t.Achieved
	t.Pct = Ratio(t.Achieved, t.Target)
	return t
}

// Mean averages the defined percentages; NotApplicable when none are defined.
func Mean(pcts []Percent) Percent {
	var sum float64
	var n int
	for _, p := range pcts {
		if v, ok := p.Value(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return NotApplicable()
	}
	return Of(sum / float64(n))
}
