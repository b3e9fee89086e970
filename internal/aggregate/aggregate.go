// Package aggregate derives read-only summary values from record lists. Every
// projection is recomputed from the full list on each call; nothing caches or
// updates incrementally.
package aggregate

import "math"

// Sum totals the values extracted from each record.
func Sum[T any](records []T, value func(T) float64) float64 {
	var total float64
	for _, r := range records {
		total += value(r)
	}
	return total
}

// Average returns Sum/len, or 0 when the list is empty. The sentinel keeps
// empty screens from rendering NaN.
func Average[T any](records []T, value func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	return Sum(records, value) / float64(len(records))
}

// Round2 rounds to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Bucket is one group-by result row.
type Bucket struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

// GroupCount tallies records per key. When universe is non-empty, the result
// contains exactly the universe keys in their declared order, zero counts
// included, and records whose key falls outside the universe are dropped.
// With a nil universe, keys appear in first-seen order.
func GroupCount[T any](records []T, key func(T) string, universe []string) []Bucket {
	return group(records, key, func(T) float64 { return 0 }, universe)
}

// GroupSum tallies records per key and totals value within each group, with
// the same universe semantics as GroupCount.
func GroupSum[T any](records []T, key func(T) string, value func(T) float64, universe []string) []Bucket {
	return group(records, key, value, universe)
}

func group[T any](records []T, key func(T) string, value func(T) float64, universe []string) []Bucket {
	index := make(map[string]int)
	// Non-nil even when empty so callers serialize [] rather than null.
	out := []Bucket{}

	fixed := len(universe) > 0
	for _, k := range universe {
		index[k] = len(out)
		out = append(out, Bucket{Key: k})
	}

	for _, r := range records {
		k := key(r)
		i, seen := index[k]
		if !seen {
			if fixed {
				continue
			}
			i = len(out)
			index[k] = i
			out = append(out, Bucket{Key: k})
		}
		out[i].Count++
		out[i].Sum += value(r)
	}
	return out
}

// CountWhere counts records matching pred.
func CountWhere[T any](records []T, pred func(T) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}
