package outwriter

import (
	"encoding/csv"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/trendline/schema"
)

// writeJSONView writes the whole view, or only the requested part of it.
func writeJSONView(w io.Writer, view *schema.View, part schema.ViewPart) error {
	switch part {
	case schema.SeriesPart:
		return writeJSON(w, view.Series)
	case schema.TablePart:
		return writeJSON(w, view.Table)
	default:
		return writeJSON(w, view)
	}
}

// writeCSVView writes the chart in long form for the series part and the table summary otherwise.
func writeCSVView(w io.Writer, view *schema.View, part schema.ViewPart, fmtFloat func(float64) string) error {
	if part == schema.SeriesPart {
		return writeCSVSeries(w, view.Series, fmtFloat)
	}
	return writeCSVTable(w, view.Table, fmtFloat)
}

// writeCSVSeries writes one row per dataset and month, in stacking order.
func writeCSVSeries(w io.Writer, series schema.RenderSeries, fmtFloat func(float64) string) error {
	header := []string{"month", "stack", "key", "label", "value", "color", "is_other", "events"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for stack, ds := range series.Datasets {
			for m, label := range series.Labels {
				events := ""
				if m < len(series.Annotations) {
					events = strings.Join(series.Annotations[m].Tooltip, "|")
				}
				value := 0.0
				if m < len(ds.Values) {
					value = ds.Values[m]
				}
				rec := []string{
					label,
					strconv.Itoa(stack),
					ds.Key,
					ds.Label,
					fmtFloat(value),
					ds.Color,
					strconv.FormatBool(ds.IsOther),
					events,
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeCSVTable writes the table summary with one column per auxiliary field.
func writeCSVTable(w io.Writer, summary schema.TableSummary, fmtFloat func(float64) string) error {
	auxNames := auxColumns(summary.Rows)
	header := append([]string{"rank", "key", "name", "total", "percent", "monthly_average"}, auxNames...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range summary.Rows {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Key,
				r.Name,
				fmtFloat(r.Total),
				fmtFloat(r.Percent),
				fmtFloat(r.MonthlyAverage),
			}
			for _, name := range auxNames {
				if v, ok := r.Aux[name]; ok {
					rec = append(rec, fmtFloat(v))
				} else {
					rec = append(rec, "")
				}
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// auxColumns returns the sorted union of auxiliary field names across rows.
func auxColumns(rows []schema.TableRow) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for name := range r.Aux {
			seen[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
