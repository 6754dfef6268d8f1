package outwriter

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/xuri/excelize/v2"
)

const (
	chartSheet = "Chart"
	tableSheet = "Table"
)

// writeXLSXView writes a workbook with a "Chart" sheet (series data plus a stacked column chart)
// and a "Table" sheet (table summary), limited to the requested part.
func writeXLSXView(view *schema.View, cfg *contract.Config, part schema.ViewPart) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	first := true
	if partIncludesSeries(part) {
		if err := f.SetSheetName("Sheet1", chartSheet); err != nil {
			return err
		}
		first = false
		if err := writeXLSXChartSheet(f, view, headerStyle); err != nil {
			return err
		}
	}
	if partIncludesTable(part) {
		if first {
			if err := f.SetSheetName("Sheet1", tableSheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(tableSheet); err != nil {
			return err
		}
		if err := writeXLSXTableSheet(f, view.Table, headerStyle); err != nil {
			return err
		}
	}

	outputPath := fileOutputPath(cfg, "xlsx")
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote XLSX to %s\n", outputPath)
	return nil
}

// setRow writes values left to right starting at column 1 of the given row.
func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// writeXLSXChartSheet lays out one row per dataset in stacking order and charts it.
func writeXLSXChartSheet(f *excelize.File, view *schema.View, headerStyle int) error {
	series := view.Series
	header := []any{"Group"}
	for _, label := range series.Labels {
		header = append(header, label)
	}
	header = append(header, "Total")
	if err := setRow(f, chartSheet, 1, header); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(chartSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for i, ds := range series.Datasets {
		row := []any{ds.Label}
		for _, v := range ds.Values {
			row = append(row, v)
		}
		row = append(row, ds.Total)
		if err := setRow(f, chartSheet, i+2, row); err != nil {
			return err
		}
	}

	eventsRow := len(series.Datasets) + 2
	events := []any{"Events"}
	for _, ann := range series.Annotations {
		events = append(events, strings.Join(ann.Tooltip, "\n"))
	}
	if err := setRow(f, chartSheet, eventsRow, events); err != nil {
		return err
	}

	if len(series.Datasets) == 0 || len(series.Labels) == 0 {
		return nil
	}

	firstCat, _ := excelize.CoordinatesToCellName(2, 1, true)
	lastCat, _ := excelize.CoordinatesToCellName(len(series.Labels)+1, 1, true)
	chartSeries := make([]excelize.ChartSeries, 0, len(series.Datasets))
	for i, ds := range series.Datasets {
		nameCell, _ := excelize.CoordinatesToCellName(1, i+2, true)
		firstVal, _ := excelize.CoordinatesToCellName(2, i+2, true)
		lastVal, _ := excelize.CoordinatesToCellName(len(series.Labels)+1, i+2, true)
		chartSeries = append(chartSeries, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!%s", chartSheet, nameCell),
			Categories: fmt.Sprintf("%s!%s:%s", chartSheet, firstCat, lastCat),
			Values:     fmt.Sprintf("%s!%s:%s", chartSheet, firstVal, lastVal),
			Fill:       excelize.Fill{Type: "pattern", Color: []string{ds.Color}, Pattern: 1},
		})
	}

	anchor, _ := excelize.CoordinatesToCellName(2, eventsRow+2)
	return f.AddChart(chartSheet, anchor, &excelize.Chart{
		Type:   excelize.ColStacked,
		Series: chartSeries,
		Title:  []excelize.RichTextRun{{Text: fmt.Sprintf("%s by month", view.Metric)}},
		Legend: excelize.ChartLegend{Position: "right"},
		Dimension: excelize.ChartDimension{
			Width:  960,
			Height: 480,
		},
	})
}

// writeXLSXTableSheet writes the table summary with numeric cells.
func writeXLSXTableSheet(f *excelize.File, summary schema.TableSummary, headerStyle int) error {
	auxNames := auxColumns(summary.Rows)
	header := []any{"Rank", "Key", "Name", "Total", "Percent", "Avg/Month"}
	for _, name := range auxNames {
		header = append(header, name)
	}
	if err := setRow(f, tableSheet, 1, header); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(tableSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for i, r := range summary.Rows {
		row := []any{r.Rank, r.Key, r.Name, r.Total, r.Percent, r.MonthlyAverage}
		for _, name := range auxNames {
			if v, ok := r.Aux[name]; ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		if err := setRow(f, tableSheet, i+2, row); err != nil {
			return err
		}
	}

	footer := []any{nil, nil, "Grand total", summary.GrandTotal}
	return setRow(f, tableSheet, len(summary.Rows)+2, footer)
}
