package core

import (
	"maps"
	"slices"

	"github.com/huangsam/trendline/core/agg"
	"github.com/huangsam/trendline/core/algo"
	"github.com/huangsam/trendline/schema"
)

// tooltipDateFormat is the date layout of event tooltip lines.
const tooltipDateFormat = "2006-01-02"

// Assemble converts ranked groups and the event overlay into the chart structure.
// Datasets keep the stacking order of ranked. Buckets with events are emphasized
// and carry one tooltip line per event in ascending date order.
func Assemble(buckets []schema.MonthBucket, ranked []schema.RankedGroup, overlay [][]schema.Event) schema.RenderSeries {
	datasets := make([]schema.Dataset, len(ranked))
	for i, rg := range ranked {
		datasets[i] = schema.Dataset{
			Key:     rg.Key,
			Label:   rg.DisplayName,
			Values:  slices.Clone(rg.MonthlySeries),
			Color:   rg.Color,
			IsOther: rg.IsOther,
			Total:   rg.Total,
		}
	}

	annotations := make([]schema.PointAnnotation, len(buckets))
	for i := range annotations {
		annotations[i].Tooltip = []string{}
		if i >= len(overlay) {
			continue
		}
		for _, e := range overlay[i] {
			annotations[i].Tooltip = append(annotations[i].Tooltip, e.Date.Format(tooltipDateFormat)+" "+e.Title)
		}
		annotations[i].Emphasized = len(overlay[i]) > 0
	}

	return schema.RenderSeries{
		Labels:      agg.Labels(buckets),
		Datasets:    datasets,
		Annotations: annotations,
	}
}

// Summarize builds the table over every group, including those the chart folds into "Other".
// Percentages use the grand total of all groups in the window as denominator.
func Summarize(buckets []schema.MonthBucket, groups []schema.Group) schema.TableSummary {
	grand := 0.0
	for _, g := range groups {
		grand += g.Total
	}

	months := len(buckets)
	sorted := algo.SortByTotal(groups)
	rows := make([]schema.TableRow, len(sorted))
	for i, g := range sorted {
		row := schema.TableRow{
			Rank:  i + 1,
			Key:   g.Key,
			Name:  g.DisplayName,
			Total: g.Total,
			Aux:   maps.Clone(g.Aux),
		}
		if grand != 0 {
			row.Percent = g.Total / grand * 100
		}
		if months > 0 {
			row.MonthlyAverage = g.Total / float64(months)
		}
		rows[i] = row
	}

	return schema.TableSummary{
		Rows:       rows,
		GrandTotal: grand,
		Months:     months,
	}
}

// BuildView ranks the groups and assembles both the chart and the table.
// It panics when topK < 0.
func BuildView(buckets []schema.MonthBucket, groups []schema.Group, overlay [][]schema.Event, topK int) schema.View {
	ranked := algo.RankAndGroup(groups, topK)
	return schema.View{
		Window: agg.Labels(buckets),
		TopK:   topK,
		Series: Assemble(buckets, ranked, overlay),
		Table:  Summarize(buckets, groups),
	}
}
