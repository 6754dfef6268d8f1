// Package parquet exports trendline views to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/trendline/schema"
	"github.com/parquet-go/parquet-go"
)

// TableRow is one group of the table summary.
type TableRow struct {
	// Rank is the position in descending-total order, starting at 1
	Rank int32 `parquet:"rank,snappy"`

	GroupKey  string  `parquet:"group_key,snappy"`
	GroupName string  `parquet:"group_name,snappy"`
	Total     float64 `parquet:"total,snappy"`

	// Percent is the share of the grand total in the window (0-100)
	Percent        float64 `parquet:"percent,snappy"`
	MonthlyAverage float64 `parquet:"monthly_average,snappy"`

	// AuxJSON holds the averaged auxiliary fields (nullable)
	AuxJSON *string `parquet:"aux_json,optional,snappy"`
}

// SeriesPoint is one dataset value in one month, in long form.
type SeriesPoint struct {
	Month      string  `parquet:"month,snappy"`
	GroupKey   string  `parquet:"group_key,snappy"`
	GroupLabel string  `parquet:"group_label,snappy"`
	Value      float64 `parquet:"value,snappy"`
	Color      string  `parquet:"color,snappy"`
	IsOther    bool    `parquet:"is_other"`

	// StackIndex is the dataset position in stacking order
	StackIndex int32 `parquet:"stack_index,snappy"`

	// Events holds the newline-joined tooltip lines of the month (nullable)
	Events *string `parquet:"events,optional,snappy"`
}

// writeParquet writes rows of any struct type to outputPath.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// WriteTableRowsParquet writes table summary rows to a Parquet file.
func WriteTableRowsParquet(data []TableRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeriesPointsParquet writes long-form series points to a Parquet file.
func WriteSeriesPointsParquet(data []SeriesPoint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertTableRows converts schema.TableRow values for Parquet export.
func ConvertTableRows(rows []schema.TableRow) ([]TableRow, error) {
	result := make([]TableRow, len(rows))
	for i, row := range rows {
		result[i] = TableRow{
			Rank:           int32(row.Rank),
			GroupKey:       row.Key,
			GroupName:      row.Name,
			Total:          row.Total,
			Percent:        row.Percent,
			MonthlyAverage: row.MonthlyAverage,
		}
		if len(row.Aux) > 0 {
			data, err := json.Marshal(row.Aux)
			if err != nil {
				return nil, fmt.Errorf("failed to encode aux fields of %s: %w", row.Key, err)
			}
			aux := string(data)
			result[i].AuxJSON = &aux
		}
	}
	return result, nil
}

// ConvertSeries flattens a RenderSeries into one point per dataset and month.
func ConvertSeries(series schema.RenderSeries) []SeriesPoint {
	result := make([]SeriesPoint, 0, len(series.Datasets)*len(series.Labels))
	for stack, ds := range series.Datasets {
		for m, label := range series.Labels {
			point := SeriesPoint{
				Month:      label,
				GroupKey:   ds.Key,
				GroupLabel: ds.Label,
				Color:      ds.Color,
				IsOther:    ds.IsOther,
				StackIndex: int32(stack),
			}
			if m < len(ds.Values) {
				point.Value = ds.Values[m]
			}
			if m < len(series.Annotations) && series.Annotations[m].Emphasized {
				events := strings.Join(series.Annotations[m].Tooltip, "\n")
				point.Events = &events
			}
			result = append(result, point)
		}
	}
	return result
}
