package agg

import (
	"sort"

	"github.com/huangsam/trendline/schema"
)

// Selector extracts the numeric quantity that a bucketer sums.
type Selector func(schema.DatedRecord) float64

// ValueOf selects the primary value of a record.
func ValueOf(r schema.DatedRecord) float64 {
	return r.Value
}

// AuxOf selects an auxiliary field. Records without the field contribute 0.
func AuxOf(name string) Selector {
	return func(r schema.DatedRecord) float64 {
		return r.Aux[name]
	}
}

// BucketRecords sums the selected quantity of each record into the bucket matching
// its year and month. The result has one zero-initialized slot per bucket and
// records outside the window are ignored.
func BucketRecords(buckets []schema.MonthBucket, records []schema.DatedRecord, selector Selector) []float64 {
	series := make([]float64, len(buckets))
	idx := indexBuckets(buckets)
	for _, r := range records {
		if i, ok := idx.lookup(r.Year, r.Month); ok {
			series[i] += selector(r)
		}
	}
	return series
}

// GroupRecords partitions records by GroupKey and produces one dense Group per key.
// Auxiliary fields are averaged over the in-window records that carry them.
// Groups are returned sorted by key so that callers get a deterministic order.
func GroupRecords(buckets []schema.MonthBucket, records []schema.DatedRecord) []schema.Group {
	idx := indexBuckets(buckets)

	type acc struct {
		name     string
		records  []schema.DatedRecord
		auxSum   map[string]float64
		auxCount map[string]int
	}
	byKey := make(map[string]*acc)

	for _, r := range records {
		a, ok := byKey[r.GroupKey]
		if !ok {
			a = &acc{auxSum: map[string]float64{}, auxCount: map[string]int{}}
			byKey[r.GroupKey] = a
		}
		if a.name == "" {
			a.name = r.GroupName
		}
		if _, inWindow := idx.lookup(r.Year, r.Month); !inWindow {
			continue
		}
		a.records = append(a.records, r)
		for k, v := range r.Aux {
			a.auxSum[k] += v
			a.auxCount[k]++
		}
	}

	groups := make([]schema.Group, 0, len(byKey))
	for key, a := range byKey {
		series := BucketRecords(buckets, a.records, ValueOf)
		g := schema.Group{
			Key:           key,
			DisplayName:   a.name,
			MonthlySeries: series,
			Total:         sum(series),
		}
		if g.DisplayName == "" {
			g.DisplayName = key
		}
		if len(a.auxSum) > 0 {
			g.Aux = make(map[string]float64, len(a.auxSum))
			for k, s := range a.auxSum {
				g.Aux[k] = s / float64(a.auxCount[k])
			}
		}
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
