// Package action plans the daily pace each record needs to close its balance.
package action

import (
	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/tier"
)

// Difficulty grades required pace against the normal daily target.
type Difficulty string

// Difficulty grades, easiest first.
const (
	DifficultyEasy             Difficulty = "Easy"
	DifficultyStretch          Difficulty = "Stretch"
	DifficultyHard             Difficulty = "Hard"
	DifficultyAlmostImpossible Difficulty = "AlmostImpossible"
	DifficultyMonthClosed      Difficulty = "MonthClosed"
)

// Pace ratio ceilings, inclusive.
const (
	easyCeiling    = 1.0
	stretchCeiling = 1.2
	hardCeiling    = 1.5
)

// Item is the plan for one record.
type Item struct {
	Name          string     `json:"name"`
	BalanceToDo   float64    `json:"balance_to_do"`
	RequiredDaily float64    `json:"required_daily"`
	NormalDaily   float64    `json:"normal_daily"`
	PaceRatio     float64    `json:"pace_ratio"`
	Difficulty    Difficulty `json:"difficulty"`
}

// Grade maps a pace ratio onto a difficulty.
func Grade(ratio float64) Difficulty {
	switch {
	case ratio <= easyCeiling:
		return DifficultyEasy
	case ratio <= stretchCeiling:
		return DifficultyStretch
	case ratio <= hardCeiling:
		return DifficultyHard
	default:
		return DifficultyAlmostImpossible
	}
}

// PlanRecord plans r for the remaining days of dc. A closed month needs 0 per day.
func PlanRecord(r model.PerformanceRecord, dc model.DateContext) Item {
	it := Item{Name: r.Name, BalanceToDo: r.BalanceToDo, NormalDaily: r.DailyTarget}
	if dc.Closed() {
		it.Difficulty = DifficultyMonthClosed
		return it
	}
	it.RequiredDaily = r.BalanceToDo / float64(dc.DaysRemaining)
	if r.DailyTarget > 0 {
		it.PaceRatio = it.RequiredDaily / r.DailyTarget
	}
	it.Difficulty = Grade(it.PaceRatio)
	return it
}

// Plan builds the plan for ranked records, preserving their order.
func Plan(ranked []tier.ClassifiedRecord, dc model.DateContext) []Item {
	out := make([]Item, len(ranked))
	for i, r := range ranked {
		out[i] = PlanRecord(r.PerformanceRecord, dc)
	}
	return out
}
