// Package ranking orders classified records best-first.
package ranking

import (
	"cmp"
	"slices"

	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/tier"
)

// Key is the sort key of a rankable item.
type Key struct {
	TierRank int
	Pct      metric.Percent
	Name     string
}

// Compare orders keys by (tier rank asc, pct desc, name asc). NotApplicable
// keys sort after every scored key and among themselves by name only.
func Compare(a, b Key) int {
	aNA, bNA := a.Pct.IsNA(), b.Pct.IsNA()
	switch {
	case aNA && bNA:
		return cmp.Compare(a.Name, b.Name)
	case aNA:
		return 1
	case bNA:
		return -1
	}
	if c := cmp.Compare(a.TierRank, b.TierRank); c != 0 {
		return c
	}
	av, _ := a.Pct.Value()
	bv, _ := b.Pct.Value()
	if c := cmp.Compare(bv, av); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Rank returns a sorted copy of items; the input is left untouched.
func Rank[T any](items []T, key func(T) Key) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return Compare(key(a), key(b))
	})
	return out
}

// RecordKey is the key of a classified record.
func RecordKey(r tier.ClassifiedRecord) Key {
	return Key{TierRank: r.Tier.Rank, Pct: r.Pct, Name: r.Name}
}

// Records ranks classified records.
func Records(records []tier.ClassifiedRecord) []tier.ClassifiedRecord {
	return Rank(records, RecordKey)
}

// Worst returns the last scored item of an already ranked slice, skipping the
// trailing NotApplicable block. ok is false when nothing is scored.
func Worst[T any](ranked []T, key func(T) Key) (T, bool) {
	for i := len(ranked) - 1; i >= 0; i-- {
		if !key(ranked[i]).Pct.IsNA() {
			return ranked[i], true
		}
	}
	var zero T
	return zero, false
}
