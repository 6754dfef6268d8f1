package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/olekukonko/tablewriter"
)

// MetricDefinition describes one supported metric.
type MetricDefinition struct {
	Name        schema.Metric `json:"name"`
	Description string        `json:"description"`
	Default     bool          `json:"default"`
}

// BuildMetricDefinitions lists every supported metric in display order.
func BuildMetricDefinitions() []MetricDefinition {
	defs := make([]MetricDefinition, len(schema.AllMetrics))
	for i, m := range schema.AllMetrics {
		defs[i] = MetricDefinition{
			Name:        m,
			Description: schema.MetricDescriptions[m],
			Default:     m == contract.DefaultMetric,
		}
	}
	return defs
}

// PrintMetricsDefinitions displays the supported metrics.
// This is a static display that does not require the record store.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	defs := BuildMetricDefinitions()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "description", "default"}, func(cw *csv.Writer) error {
				for _, d := range defs {
					if err := cw.Write([]string{string(d.Name), d.Description, fmt.Sprintf("%t", d.Default)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, defs)
		}, "Wrote text")
	}
}

// printMetricsText displays metrics in a human-readable table.
func printMetricsText(w io.Writer, defs []MetricDefinition) error {
	if _, err := fmt.Fprintln(w, contract.HeaderColor.Sprint("📈 Trendline Metrics")); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Description"})
	var data [][]string
	for _, d := range defs {
		name := string(d.Name)
		if d.Default {
			name += " (default)"
		}
		data = append(data, []string{name, d.Description})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
