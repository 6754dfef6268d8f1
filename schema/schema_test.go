package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthBucketMatches(t *testing.T) {
	b := MonthBucket{Year: 2024, Month: 2, Label: "2024-02"}
	assert.True(t, b.Matches(2024, 2))
	assert.False(t, b.Matches(2023, 2))
	assert.False(t, b.Matches(2024, 3))
}

func TestColorForRank(t *testing.T) {
	assert.Equal(t, Palette[0], ColorForRank(0))
	assert.Equal(t, Palette[3], ColorForRank(3))
	assert.Equal(t, Palette[0], ColorForRank(len(Palette)), "palette wraps around")
	assert.NotContains(t, Palette, OtherColor)
}

func TestRenderSeriesIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		series RenderSeries
		want   bool
	}{
		{"no datasets", RenderSeries{}, true},
		{"all zero", RenderSeries{Datasets: []Dataset{{Values: []float64{0, 0}}, {Values: []float64{0}}}}, true},
		{"one nonzero", RenderSeries{Datasets: []Dataset{{Values: []float64{0, 0}}, {Values: []float64{0, 3}}}}, false},
		{"negative margin", RenderSeries{Datasets: []Dataset{{Values: []float64{-1}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.series.IsEmpty())
		})
	}
}

func TestValidMaps(t *testing.T) {
	for _, m := range AllMetrics {
		_, ok := ValidMetrics[m]
		assert.True(t, ok, "metric %s should be valid", m)
		assert.NotEmpty(t, MetricDescriptions[m])
	}
	_, ok := ValidStoreBackends[NoneBackend]
	assert.False(t, ok, "records cannot live in the none backend")
}
