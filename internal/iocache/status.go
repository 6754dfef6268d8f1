package iocache

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/trendline/schema"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// PrintCacheStatus prints view cache status information.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	_, _ = fmt.Fprintf(w, "Cache Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format(statusTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format(statusTimeFormat))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintStoreStatus prints record store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Schema Version: %d\n", status.SchemaVersion)
	_, _ = fmt.Fprintf(w, "Total Records: %d\n", status.TotalRecords)
	if status.TotalRecords > 0 {
		_, _ = fmt.Fprintf(w, "Oldest Month: %s\n", status.OldestRecord.Format("2006-01"))
		_, _ = fmt.Fprintf(w, "Newest Month: %s\n", status.NewestRecord.Format("2006-01"))
		metrics := make([]schema.Metric, 0, len(status.RecordsPerMetric))
		for metric := range status.RecordsPerMetric {
			metrics = append(metrics, metric)
		}
		slices.Sort(metrics)
		_, _ = fmt.Fprintln(w, "Records per Metric:")
		for _, metric := range metrics {
			_, _ = fmt.Fprintf(w, "  %s: %d\n", metric, status.RecordsPerMetric[metric])
		}
	}
	_, _ = fmt.Fprintf(w, "Total Events: %d\n", status.TotalEvents)

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d bytes\n", table, status.TableSizes[table])
	}
}

