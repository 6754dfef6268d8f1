package outwriter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/trendline/schema"
)

const (
	chartWidth  = "1100px"
	chartHeight = "520px"
	stackName   = "total"
)

// tableFragment renders the table summary. It is spliced into the chart page
// or wrapped in tableDocument when the chart is not requested.
const tableFragment = `{{define "table"}}<section class="trendline-table">
<h2>{{.Title}}</h2>
<table>
<thead><tr><th>Rank</th><th>Key</th><th>Name</th><th>Total</th><th>%</th><th>Avg/Month</th>{{range .AuxNames}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Rank}}</td><td>{{.Key}}</td><td>{{.Name}}</td><td>{{.Total}}</td><td>{{.Percent}}</td><td>{{.Average}}</td>{{range .Aux}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
<tfoot><tr><td colspan="3">Grand total</td><td>{{.GrandTotal}}</td><td colspan="{{.FooterSpan}}"></td></tr></tfoot>
</table>
</section>
{{end}}`

const tableDocument = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
{{template "table" .}}</body>
</html>
`

var htmlTemplates = template.Must(template.Must(template.New("document").Parse(tableDocument)).Parse(tableFragment))

type htmlTableRow struct {
	Rank    int
	Key     string
	Name    string
	Total   string
	Percent string
	Average string
	Aux     []string
}

type htmlTable struct {
	Title      string
	AuxNames   []string
	Rows       []htmlTableRow
	GrandTotal string
	FooterSpan int
}

// writeHTMLView writes a standalone HTML page with a stacked bar chart and/or the table summary.
func writeHTMLView(w io.Writer, view *schema.View, part schema.ViewPart, fmtFloat func(float64) string) error {
	title := fmt.Sprintf("trendline: %s", view.Metric)

	if !partIncludesSeries(part) {
		return htmlTemplates.ExecuteTemplate(w, "document", buildHTMLTable(title, view.Table, fmtFloat))
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(buildStackedBar(view))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if !partIncludesTable(part) {
		_, err := w.Write(buf.Bytes())
		return err
	}

	var table bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&table, "table", buildHTMLTable(title, view.Table, fmtFloat)); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err := io.WriteString(w, spliceBeforeBodyEnd(buf.String(), table.String()))
	return err
}

// spliceBeforeBodyEnd inserts fragment right before the closing body tag, or appends it.
func spliceBeforeBodyEnd(page, fragment string) string {
	idx := strings.LastIndex(page, "</body>")
	if idx < 0 {
		return page + fragment
	}
	return page[:idx] + fragment + page[idx:]
}

// buildStackedBar turns the render series into a stacked bar chart.
// Datasets keep stacking order, months with events get a labeled mark line.
func buildStackedBar(view *schema.View) *charts.Bar {
	series := view.Series

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s by month", view.Metric),
			Subtitle: fmt.Sprintf("Top %d groups, %d months", view.TopK, len(series.Labels)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Right:  "10",
			Orient: "vertical",
		}),
		charts.WithGridOpts(opts.Grid{
			Left:  "80",
			Right: "220",
		}),
	)
	bar.SetXAxis(series.Labels)

	var eventLines []opts.MarkLineNameXAxisItem
	for i, ann := range series.Annotations {
		if !ann.Emphasized {
			continue
		}
		eventLines = append(eventLines, opts.MarkLineNameXAxisItem{
			Name:  strings.Join(ann.Tooltip, "\n"),
			XAxis: series.Labels[i],
		})
	}

	for i, ds := range series.Datasets {
		data := make([]opts.BarData, len(ds.Values))
		for m, v := range ds.Values {
			data[m] = opts.BarData{Name: series.Labels[m], Value: v}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithBarChartOpts(opts.BarChart{Stack: stackName}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Color}),
		}
		// Event markers ride on the top of the stack
		if i == len(series.Datasets)-1 && len(eventLines) > 0 {
			seriesOpts = append(seriesOpts,
				charts.WithMarkLineNameXAxisItemOpts(eventLines...),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
					Label: &opts.Label{Show: opts.Bool(true)},
				}),
			)
		}
		bar.AddSeries(ds.Label, data, seriesOpts...)
	}

	return bar
}

// buildHTMLTable formats the table summary for the HTML templates.
func buildHTMLTable(title string, summary schema.TableSummary, fmtFloat func(float64) string) htmlTable {
	auxNames := auxColumns(summary.Rows)
	table := htmlTable{
		Title:      title,
		AuxNames:   auxNames,
		GrandTotal: fmtFloat(summary.GrandTotal),
		FooterSpan: 2 + len(auxNames),
	}
	for _, r := range summary.Rows {
		row := htmlTableRow{
			Rank:    r.Rank,
			Key:     r.Key,
			Name:    r.Name,
			Total:   fmtFloat(r.Total),
			Percent: fmtFloat(r.Percent),
			Average: fmtFloat(r.MonthlyAverage),
		}
		for _, name := range auxNames {
			if v, ok := r.Aux[name]; ok {
				row.Aux = append(row.Aux, fmtFloat(v))
			} else {
				row.Aux = append(row.Aux, "")
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
