package agg

import (
	"sort"

	"github.com/huangsam/trendline/schema"
)

// BucketEvents places every event in the bucket of its calendar month.
// Each slot is sorted ascending by date (stable for equal dates). Slots without
// events hold an empty, non-nil slice; events outside the window are dropped.
func BucketEvents(buckets []schema.MonthBucket, events []schema.Event) [][]schema.Event {
	overlay := make([][]schema.Event, len(buckets))
	for i := range overlay {
		overlay[i] = []schema.Event{}
	}

	idx := indexBuckets(buckets)
	for _, e := range events {
		if i, ok := idx.lookup(e.Date.Year(), int(e.Date.Month())); ok {
			overlay[i] = append(overlay[i], e)
		}
	}

	for _, slot := range overlay {
		sort.SliceStable(slot, func(a, b int) bool {
			return slot[a].Date.Before(slot[b].Date)
		})
	}
	return overlay
}
