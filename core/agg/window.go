// Package agg turns sparse dated records and events into dense month-indexed series.
package agg

import (
	"fmt"
	"time"

	"github.com/huangsam/trendline/schema"
)

// LabelFormat is the layout used for bucket labels.
const LabelFormat = "2006-01"

// BuildWindow returns size contiguous calendar-month buckets ending at the anchor's month.
// Earlier buckets step back one month at a time, wrapping January to December of the
// previous year. It panics when size < 1.
func BuildWindow(anchor time.Time, size int) []schema.MonthBucket {
	if size < 1 {
		panic(fmt.Sprintf("agg: window size must be at least 1, got %d", size))
	}

	year, month := anchor.Year(), int(anchor.Month())
	buckets := make([]schema.MonthBucket, size)
	for i := size - 1; i >= 0; i-- {
		buckets[i] = newBucket(year, month)
		month--
		if month < 1 {
			month = 12
			year--
		}
	}
	return buckets
}

// WindowBounds returns the first instant of the first bucket and the first instant
// after the last bucket, both in UTC. Stores use it to narrow their queries.
func WindowBounds(buckets []schema.MonthBucket) (from, to time.Time) {
	if len(buckets) == 0 {
		return time.Time{}, time.Time{}
	}
	first, last := buckets[0], buckets[len(buckets)-1]
	from = time.Date(first.Year, time.Month(first.Month), 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(last.Year, time.Month(last.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return from, to
}

// Labels returns the bucket labels in window order.
func Labels(buckets []schema.MonthBucket) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	return labels
}

func newBucket(year, month int) schema.MonthBucket {
	return schema.MonthBucket{
		Year:  year,
		Month: month,
		Label: fmt.Sprintf("%04d-%02d", year, month),
	}
}

// bucketIndex maps a (year, month) pair to its position in the window.
type bucketIndex map[[2]int]int

func indexBuckets(buckets []schema.MonthBucket) bucketIndex {
	idx := make(bucketIndex, len(buckets))
	for i, b := range buckets {
		idx[[2]int{b.Year, b.Month}] = i
	}
	return idx
}

func (idx bucketIndex) lookup(year, month int) (int, bool) {
	i, ok := idx[[2]int{year, month}]
	return i, ok
}
