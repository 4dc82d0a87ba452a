package domain

import (
	"cmp"
	"slices"
)

// Count is one entry of an ordered label -> count mapping.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountByCause groups incidents by cause. The result is sorted descending by count;
// equal counts keep the order in which their cause was first encountered.
func CountByCause(incidents []Incident) []Count {
	counts := groupCounts(incidents, func(inc Incident) string { return inc.Cause })
	slices.SortStableFunc(counts, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return counts
}

// CountByState groups incidents by state code, keys in ascending lexicographic order.
// Incidents without a state are grouped under the empty key.
func CountByState(incidents []Incident) []Count {
	counts := groupCounts(incidents, func(inc Incident) string { return inc.State })
	slices.SortFunc(counts, func(a, b Count) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return counts
}

// MaxCount returns the largest count, or 1 when there is nothing to scale against.
func MaxCount(counts []Count) int {
	m := 0
	for _, c := range counts {
		m = max(m, c.Count)
	}
	if m == 0 {
		return 1
	}
	return m
}

// groupCounts tallies incidents by key in first-encounter order.
func groupCounts(incidents []Incident, key func(Incident) string) []Count {
	counts := make([]Count, 0)
	index := make(map[string]int)
	for _, inc := range incidents {
		k := key(inc)
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, Count{Key: k})
		}
		counts[i].Count++
	}
	return counts
}
