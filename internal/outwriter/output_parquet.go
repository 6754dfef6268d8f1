package outwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/parquet"
	"github.com/huangsam/trendline/schema"
)

// writeParquetView writes table rows to the output path. The series part writes
// long-form series points there instead; the full view writes both, with the
// series going to a sibling "<name>_series.parquet" file.
func writeParquetView(view *schema.View, cfg *contract.Config, part schema.ViewPart) error {
	outputPath := fileOutputPath(cfg, "parquet")

	switch part {
	case schema.SeriesPart:
		return writeSeriesParquet(view.Series, outputPath)
	case schema.TablePart:
		return writeTableParquet(view.Table, outputPath)
	default:
		if err := writeTableParquet(view.Table, outputPath); err != nil {
			return err
		}
		return writeSeriesParquet(view.Series, seriesSiblingPath(outputPath))
	}
}

func writeTableParquet(summary schema.TableSummary, outputPath string) error {
	rows, err := parquet.ConvertTableRows(summary.Rows)
	if err != nil {
		return err
	}
	if err := parquet.WriteTableRowsParquet(rows, outputPath); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d table rows to %s\n", len(rows), outputPath)
	return nil
}

func writeSeriesParquet(series schema.RenderSeries, outputPath string) error {
	points := parquet.ConvertSeries(series)
	if err := parquet.WriteSeriesPointsParquet(points, outputPath); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d series points to %s\n", len(points), outputPath)
	return nil
}

// seriesSiblingPath turns "dir/sales.parquet" into "dir/sales_series.parquet".
func seriesSiblingPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_series" + ext
}
