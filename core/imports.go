package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/ingest"
)

// ExecuteImportRecords reads a records CSV and stores it under the configured metric.
func ExecuteImportRecords(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	store := mgr.GetRecordStore()
	if store == nil {
		return errNoRecordStore
	}
	start := time.Now()
	records, err := ingest.ReadRecordsFile(cfg.ImportPath)
	if err != nil {
		return err
	}
	n, err := store.InsertRecords(ctx, cfg.Metric, records)
	if err != nil {
		return fmt.Errorf("storing records: %w", err)
	}
	fmt.Printf("Imported %d %s records from %s in %v\n", n, cfg.Metric, cfg.ImportPath, time.Since(start).Round(time.Millisecond))
	return nil
}

// ExecuteImportEvents reads an events CSV and stores every row.
func ExecuteImportEvents(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	store := mgr.GetRecordStore()
	if store == nil {
		return errNoRecordStore
	}
	start := time.Now()
	events, err := ingest.ReadEventsFile(cfg.ImportPath)
	if err != nil {
		return err
	}
	n, err := store.InsertEvents(ctx, events)
	if err != nil {
		return fmt.Errorf("storing events: %w", err)
	}
	fmt.Printf("Imported %d events from %s in %v\n", n, cfg.ImportPath, time.Since(start).Round(time.Millisecond))
	return nil
}
