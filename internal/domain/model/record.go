// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// PerformanceRecord is one brand or salesperson row of a target/achievement sheet.
// Values are already typed by the ingestion adapter and never mutated downstream.
type PerformanceRecord struct {
	Name        string  `json:"name"`
	Target      float64 `json:"target"`
	Achieved    float64 `json:"achieved"`
	BalanceToDo float64 `json:"balance_to_do"`
	DailyTarget float64 `json:"daily_target"`
}

// Add returns the field-wise sum of r and o, keeping r's name.
func (r PerformanceRecord) Add(o PerformanceRecord) PerformanceRecord {
	return PerformanceRecord{
		Name:        r.Name,
		Target:      r.Target + o.Target,
		Achieved:    r.Achieved + o.Achieved,
		BalanceToDo: r.BalanceToDo + o.BalanceToDo,
		DailyTarget: r.DailyTarget + o.DailyTarget,
	}
}

// BranchRecords groups the records of one branch sheet.
type BranchRecords struct {
	Branch  string              `json:"branch"`
	Records []PerformanceRecord `json:"records"`
}

// StaffRecord carries the two component metrics tracked per salesperson.
type StaffRecord struct {
	Name        string            `json:"name"`
	Handset     PerformanceRecord `json:"handset"`
	Accessories PerformanceRecord `json:"accessories"`
}

// Overall is the combined handset + accessories record.
func (s StaffRecord) Overall() PerformanceRecord {
	o := s.Handset.Add(s.Accessories)
	o.Name = s.Name
	return o
}

// DateContext describes how far into the reporting period a report is.
type DateContext struct {
	DaysCompleted int `json:"days_completed"`
	DaysRemaining int `json:"days_remaining"`
	TotalDays     int `json:"total_days"`
}

// NewDateContext derives the month context for a report dated t: the day of
// month counts as completed.
func NewDateContext(t time.Time) DateContext {
	total := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	return DateContext{
		DaysCompleted: t.Day(),
		DaysRemaining: total - t.Day(),
		TotalDays:     total,
	}
}

// Closed reports whether no days remain in the period.
func (d DateContext) Closed() bool {
	return d.DaysRemaining <= 0
}

// NormalizeName canonicalises an entity name for joins.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// GroupByName sums records sharing a trimmed name, keeping first-seen order.
func GroupByName(groups ...[]PerformanceRecord) []PerformanceRecord {
	index := make(map[string]int)
	var out []PerformanceRecord
	for _, records := range groups {
		for _, r := range records {
			key := strings.TrimSpace(r.Name)
			if i, ok := index[key]; ok {
				out[i] = out[i].Add(r)
				continue
			}
			r.Name = key
			index[key] = len(out)
			out = append(out, r)
		}
	}
	return out
}
