package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeTextView renders the requested parts of a view as terminal tables.
func writeTextView(w io.Writer, view *schema.View, cfg *contract.Config, part schema.ViewPart, fmtFloat func(float64) string, duration time.Duration) error {
	if view.Series.IsEmpty() {
		if _, err := fmt.Fprintf(w, "No %s data in the selected window.\n", view.Metric); err != nil {
			return err
		}
	} else {
		if partIncludesSeries(part) {
			if err := writeSeriesTable(w, view.Series, cfg, fmtFloat); err != nil {
				return err
			}
			if err := writeEventList(w, view.Series); err != nil {
				return err
			}
		}
		if partIncludesTable(part) {
			if err := writeSummaryTable(w, view.Table, cfg, fmtFloat); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "View built in %v. Store backend: %s, cache backend: %s\n", duration, cfg.StoreBackend, cfg.CacheBackend)
	return err
}

// writeSeriesTable prints the chart datasets in stacking order with their color swatches.
func writeSeriesTable(w io.Writer, series schema.RenderSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Stack", "Color", "Group", "Total", "Peak", "Peak Month"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxNameWidth(cfg)
	var data [][]string
	for i, ds := range series.Datasets {
		peakIdx := 0
		for m, v := range ds.Values {
			if v > ds.Values[peakIdx] {
				peakIdx = m
			}
		}
		peakValue, peakLabel := 0.0, ""
		if len(ds.Values) > 0 {
			peakValue = ds.Values[peakIdx]
			peakLabel = series.Labels[peakIdx]
		}

		label := contract.TruncateText(ds.Label, nameWidth)
		if ds.IsOther {
			label = contract.OtherColor.Sprint(label)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			colorSwatch(ds.Color),
			label,
			fmtFloat(ds.Total),
			fmtFloat(peakValue),
			peakLabel,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeEventList prints the event tooltips of every emphasized month.
func writeEventList(w io.Writer, series schema.RenderSeries) error {
	var lines []string
	for i, ann := range series.Annotations {
		if !ann.Emphasized {
			continue
		}
		for _, tip := range ann.Tooltip {
			lines = append(lines, fmt.Sprintf("  %s  %s", contract.EventColor.Sprint(series.Labels[i]), tip))
		}
	}
	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Events:\n%s\n", strings.Join(lines, "\n"))
	return err
}

// writeSummaryTable prints every group of the window with its share of the grand total.
// Groups outside the top-K, which the chart folds into "Other", are dimmed.
func writeSummaryTable(w io.Writer, summary schema.TableSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Key", "Name", "Total", "%", "Avg/Month"}
	headers = append(headers, cfg.AuxFields...)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxNameWidth(cfg)
	var data [][]string
	for _, r := range summary.Rows {
		name := contract.TruncateText(r.Name, nameWidth)
		if r.Rank > cfg.TopK {
			name = contract.OtherColor.Sprint(name)
		}
		row := []string{
			strconv.Itoa(r.Rank),
			r.Key,
			name,
			fmtFloat(r.Total),
			fmtFloat(r.Percent),
			fmtFloat(r.MonthlyAverage),
		}
		for _, aux := range cfg.AuxFields {
			if v, ok := r.Aux[aux]; ok {
				row = append(row, fmtFloat(v))
			} else {
				row = append(row, "-")
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d groups over %d months (grand total: %s)\n", len(summary.Rows), summary.Months, fmtFloat(summary.GrandTotal))
	return err
}

// colorSwatch renders a two-cell block in the given hex color.
// Unparseable colors fall back to the hex text itself.
func colorSwatch(hex string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}
	return color.BgRGB(r, g, b).Sprint("  ")
}

// parseHexColor parses "#rrggbb".
func parseHexColor(hex string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
