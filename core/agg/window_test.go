package agg

import (
	"testing"
	"time"

	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWindow(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		size   int
		want   []string
	}{
		{
			name:   "wraps across year boundary",
			anchor: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			size:   3,
			want:   []string{"2023-12", "2024-01", "2024-02"},
		},
		{
			name:   "single bucket is the anchor month",
			anchor: time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC),
			size:   1,
			want:   []string{"2024-06"},
		},
		{
			name:   "thirteen months spans two year changes",
			anchor: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			size:   13,
			want: []string{
				"2023-01", "2023-02", "2023-03", "2023-04", "2023-05", "2023-06",
				"2023-07", "2023-08", "2023-09", "2023-10", "2023-11", "2023-12", "2024-01",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := BuildWindow(tt.anchor, tt.size)
			require.Len(t, buckets, tt.size)
			assert.Equal(t, tt.want, Labels(buckets))
			last := buckets[len(buckets)-1]
			assert.Equal(t, tt.anchor.Year(), last.Year)
			assert.Equal(t, int(tt.anchor.Month()), last.Month)
		})
	}
}

func TestBuildWindowContiguous(t *testing.T) {
	buckets := BuildWindow(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), 40)
	for i := 1; i < len(buckets); i++ {
		prev, cur := buckets[i-1], buckets[i]
		assert.Equal(t, prev.Year*12+prev.Month+1, cur.Year*12+cur.Month, "bucket %d should follow %d", i, i-1)
		assert.GreaterOrEqual(t, cur.Month, 1)
		assert.LessOrEqual(t, cur.Month, 12)
	}
}

func TestBuildWindowPanics(t *testing.T) {
	anchor := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Panics(t, func() { BuildWindow(anchor, 0) })
	assert.Panics(t, func() { BuildWindow(anchor, -3) })
}

func TestWindowBounds(t *testing.T) {
	buckets := BuildWindow(time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC), 2)
	from, to := WindowBounds(buckets)
	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)

	from, to = WindowBounds(nil)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}

func TestIndexBuckets(t *testing.T) {
	idx := indexBuckets([]schema.MonthBucket{{Year: 2023, Month: 12}, {Year: 2024, Month: 1}})
	i, ok := idx.lookup(2024, 1)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = idx.lookup(2024, 2)
	assert.False(t, ok)
}
