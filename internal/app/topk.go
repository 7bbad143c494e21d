package app

import (
	"sort"

	"review_analytics/internal/domain"
)

// TopTags counts the flattened tag sequence and returns the k most frequent
// tags, count descending. Ties keep first-occurrence order: candidates are
// collected in the order each tag is first seen and the sort is stable, so
// equal counts never reorder.
func TopTags(tags []string, k int) []domain.TagCount {
	counts := make(map[string]int, len(tags))
	order := make([]string, 0, len(tags))
	for _, t := range tags {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	out := make([]domain.TagCount, 0, len(order))
	for _, t := range order {
		out = append(out, domain.TagCount{Tag: t, Count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
