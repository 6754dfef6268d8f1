// Package core has the query logic that turns stored records into chart and table views.
package core

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/outwriter"
	"github.com/huangsam/trendline/schema"
)

// ExecutorFunc defines the function signature for executing different view modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// errNoRecordStore is returned when a command runs before the record store is initialized.
var errNoRecordStore = errors.New("record store is not initialized")

// ExecuteSeries builds the view and prints the chart datasets.
// It serves as the main entry point for the 'series' command.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, schema.SeriesPart)
}

// ExecuteTable builds the view and prints the full table summary.
// It serves as the main entry point for the 'table' command.
func ExecuteTable(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, schema.TablePart)
}

// ExecuteView builds the view and prints both the chart datasets and the table.
func ExecuteView(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, schema.FullView)
}

// GetViewResults builds the view for cfg without printing it.
// The cache is consulted when the manager provides a view store.
func GetViewResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.View, time.Duration, error) {
	start := time.Now()
	records := mgr.GetRecordStore()
	if records == nil {
		return nil, 0, errNoRecordStore
	}
	view, err := cachedView(ctx, cfg, records, mgr.GetViewStore())
	if err != nil {
		return nil, 0, err
	}
	return view, time.Since(start), nil
}

func executeView(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, part schema.ViewPart) error {
	view, duration, err := GetViewResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if cfg.Output == schema.TextOut && !shouldSuppressHeader(ctx) && len(view.Window) > 0 {
		contract.LogViewHeader(os.Stdout, cfg, view.Window[0], view.Window[len(view.Window)-1])
	}
	return outwriter.NewOutWriter().WriteView(view, cfg, part, duration)
}
