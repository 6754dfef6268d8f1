package agg

import (
	"testing"
	"time"

	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T) []schema.MonthBucket {
	t.Helper()
	return BuildWindow(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 3)
}

func TestBucketRecords(t *testing.T) {
	buckets := window(t)

	t.Run("sums records in the same month", func(t *testing.T) {
		records := []schema.DatedRecord{
			{Year: 2024, Month: 1, Value: 5},
			{Year: 2024, Month: 1, Value: 7},
		}
		assert.Equal(t, []float64{0, 12, 0}, BucketRecords(buckets, records, ValueOf))
	})

	t.Run("ignores records outside the window", func(t *testing.T) {
		records := []schema.DatedRecord{
			{Year: 2023, Month: 11, Value: 100},
			{Year: 2024, Month: 3, Value: 100},
			{Year: 2023, Month: 12, Value: 1},
		}
		assert.Equal(t, []float64{1, 0, 0}, BucketRecords(buckets, records, ValueOf))
	})

	t.Run("empty input yields zeros", func(t *testing.T) {
		series := BucketRecords(buckets, nil, ValueOf)
		require.Len(t, series, 3)
		assert.Equal(t, []float64{0, 0, 0}, series)
	})

	t.Run("aux selector treats missing field as zero", func(t *testing.T) {
		records := []schema.DatedRecord{
			{Year: 2024, Month: 2, Value: 1, Aux: map[string]float64{schema.AuxQuantity: 4}},
			{Year: 2024, Month: 2, Value: 1},
		}
		assert.Equal(t, []float64{0, 0, 4}, BucketRecords(buckets, records, AuxOf(schema.AuxQuantity)))
	})
}

func TestGroupRecords(t *testing.T) {
	buckets := window(t)
	records := []schema.DatedRecord{
		{Year: 2024, Month: 1, Value: 10, GroupKey: "b", GroupName: "Bravo", Aux: map[string]float64{"unit_price": 2}},
		{Year: 2024, Month: 2, Value: 5, GroupKey: "b", Aux: map[string]float64{"unit_price": 4}},
		{Year: 2023, Month: 12, Value: 3, GroupKey: "a", GroupName: "Alpha"},
		{Year: 2022, Month: 1, Value: 99, GroupKey: "a", Aux: map[string]float64{"unit_price": 1000}},
		{Year: 2022, Month: 1, Value: 99, GroupKey: "z"},
	}

	groups := GroupRecords(buckets, records)
	require.Len(t, groups, 3)

	assert.Equal(t, "a", groups[0].Key)
	assert.Equal(t, "Alpha", groups[0].DisplayName)
	assert.Equal(t, []float64{3, 0, 0}, groups[0].MonthlySeries)
	assert.InDelta(t, 3.0, groups[0].Total, 1e-9)
	assert.Nil(t, groups[0].Aux, "out-of-window aux values are not averaged")

	assert.Equal(t, "Bravo", groups[1].DisplayName)
	assert.Equal(t, []float64{0, 10, 5}, groups[1].MonthlySeries)
	assert.InDelta(t, 15.0, groups[1].Total, 1e-9)
	assert.InDelta(t, 3.0, groups[1].Aux["unit_price"], 1e-9)

	assert.Equal(t, "z", groups[2].DisplayName, "missing name falls back to key")
	assert.Equal(t, []float64{0, 0, 0}, groups[2].MonthlySeries)
	assert.Zero(t, groups[2].Total)
}
