// Package algo has the ranking and grouping algorithms behind chart datasets.
package algo

import (
	"fmt"
	"maps"
	"sort"

	"github.com/huangsam/trendline/schema"
)

// SortByTotal returns a copy of groups sorted by total in descending order.
// Ties are broken by key ascending so the order is fully deterministic.
func SortByTotal(groups []schema.Group) []schema.Group {
	sorted := make([]schema.Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Total != sorted[j].Total {
			return sorted[i].Total > sorted[j].Total
		}
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// RankAndGroup keeps the topK largest groups, merges the rest into a single
// "Other" group and returns everything in stacking order: "Other" first, then
// the kept groups by ascending total, so rank 0 ends up on top of the stack.
//
// Colors depend only on rank, which makes repeated calls on the same input
// return identical colors. The input slice is not modified. It panics when
// topK < 0.
func RankAndGroup(groups []schema.Group, topK int) []schema.RankedGroup {
	if topK < 0 {
		panic(fmt.Sprintf("algo: topK must not be negative, got %d", topK))
	}
	if len(groups) == 0 {
		return []schema.RankedGroup{}
	}

	sorted := SortByTotal(groups)
	keep := min(topK, len(sorted))

	ranked := make([]schema.RankedGroup, 0, keep+1)
	for i := range keep {
		ranked = append(ranked, schema.RankedGroup{
			Group: cloneGroup(sorted[i]),
			Rank:  i,
			Color: schema.ColorForRank(i),
		})
	}

	out := make([]schema.RankedGroup, 0, keep+1)
	if keep < len(sorted) {
		out = append(out, mergeOther(sorted[keep:], topK))
	}
	for i := len(ranked) - 1; i >= 0; i-- {
		out = append(out, ranked[i])
	}
	return out
}

// mergeOther sums the long tail element-wise into the synthetic "Other" group.
func mergeOther(tail []schema.Group, rank int) schema.RankedGroup {
	length := 0
	for _, g := range tail {
		length = max(length, len(g.MonthlySeries))
	}

	series := make([]float64, length)
	total := 0.0
	for _, g := range tail {
		for i, v := range g.MonthlySeries {
			series[i] += v
		}
		total += g.Total
	}

	return schema.RankedGroup{
		Group: schema.Group{
			Key:           schema.OtherKey,
			DisplayName:   schema.OtherLabel,
			MonthlySeries: series,
			Total:         total,
		},
		Rank:    rank,
		Color:   schema.OtherColor,
		IsOther: true,
	}
}

func cloneGroup(g schema.Group) schema.Group {
	c := g
	c.MonthlySeries = append([]float64(nil), g.MonthlySeries...)
	c.Aux = maps.Clone(g.Aux)
	return c
}
