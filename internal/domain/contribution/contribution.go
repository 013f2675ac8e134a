// Package contribution computes each party's share of a combined total and
// names the dominant one, the carrier.
package contribution

import (
	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
)

const percentScale = 100

// Amount is one party's contribution.
type Amount struct {
	Branch string
	Amount float64
}

// Share is a party's contribution and its percentage of the total.
type Share struct {
	Branch string  `json:"branch"`
	Amount float64 `json:"amount"`
	Pct    float64 `json:"pct"`
}

// Analysis is the outcome of Analyze. When the total is zero Defined is false,
// Shares is empty and Carrier is blank.
type Analysis struct {
	Total   float64 `json:"total"`
	Shares  []Share `json:"shares"`
	Carrier string  `json:"carrier,omitempty"`
	Defined bool    `json:"defined"`
}

// Analyze computes shares in declaration order. Ties for the largest share go
// to the first declared party.
func Analyze(amounts []Amount) Analysis {
	var total float64
	for _, a := range amounts {
		total += a.Amount
	}
	a := Analysis{Total: total, Shares: []Share{}}
	if total == 0 {
		return a
	}
	a.Defined = true
	best := -1
	for i, am := range amounts {
		pct := am.Amount / total * percentScale
		a.Shares = append(a.Shares, Share{Branch: am.Branch, Amount: am.Amount, Pct: pct})
		if best < 0 || pct > a.Shares[best].Pct {
			best = i
		}
	}
	a.Carrier = a.Shares[best].Branch
	return a
}

// Achieved builds amounts from each branch's summed achievement.
func Achieved(branches []model.BranchRecords) []Amount {
	out := make([]Amount, len(branches))
	for i, b := range branches {
		out[i] = Amount{Branch: b.Branch, Amount: metric.Sum(b.Records).Achieved}
	}
	return out
}

// Records builds amounts from records with positive achievement, one per record.
func Records(records []model.PerformanceRecord) []Amount {
	var out []Amount
	for _, r := range records {
		if r.Achieved > 0 {
			out = append(out, Amount{Branch: r.Name, Amount: r.Achieved})
		}
	}
	return out
}
