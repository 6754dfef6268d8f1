// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteView prints a view using the configured output format.
func (ow *OutWriter) WriteView(view *schema.View, cfg *contract.Config, part schema.ViewPart, duration time.Duration) error {
	return PrintViewResults(view, cfg, part, duration)
}

// WriteMetrics prints the supported metrics using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintMetricsDefinitions(cfg)
}

// PrintViewResults outputs a view, dispatching based on the output format configured.
// The part selects the chart, the table or both.
func PrintViewResults(view *schema.View, cfg *contract.Config, part schema.ViewPart, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONView(w, view, part)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVView(w, view, part, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.HTMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHTMLView(w, view, part, fmtFloat)
		}, "Wrote HTML"); err != nil {
			return fmt.Errorf("error writing HTML output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetView(view, cfg, part); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.XLSXOut:
		if err := writeXLSXView(view, cfg, part); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextView(w, view, cfg, part, fmtFloat, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}
