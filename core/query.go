package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/trendline/core/agg"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"golang.org/x/sync/errgroup"
)

// buildViewFromStore loads the window's records and events and assembles the view.
func buildViewFromStore(ctx context.Context, cfg *contract.Config, records contract.RecordStore) (*schema.View, error) {
	buckets := agg.BuildWindow(cfg.Anchor, cfg.Window)
	from, to := agg.WindowBounds(buckets)

	var (
		rows   []schema.DatedRecord
		events []schema.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rows, err = records.LoadRecords(gctx, cfg.Metric, from, to); err != nil {
			return fmt.Errorf("loading %s records: %w", cfg.Metric, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if events, err = records.LoadEvents(gctx, cfg.Entity, from, to); err != nil {
			return fmt.Errorf("loading events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	groups := agg.GroupRecords(buckets, filterGroups(rows, cfg.GroupFilter))
	groups = selectAux(groups, cfg.AuxFields)
	overlay := agg.BucketEvents(buckets, events)

	view := BuildView(buckets, groups, overlay, cfg.TopK)
	view.Metric = cfg.Metric
	return &view, nil
}

// filterGroups keeps the records whose group key starts with prefix.
func filterGroups(records []schema.DatedRecord, prefix string) []schema.DatedRecord {
	if prefix == "" {
		return records
	}
	filtered := make([]schema.DatedRecord, 0, len(records))
	for _, r := range records {
		if strings.HasPrefix(r.GroupKey, prefix) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// selectAux drops auxiliary averages the user did not ask for.
func selectAux(groups []schema.Group, fields []string) []schema.Group {
	for i := range groups {
		if groups[i].Aux == nil {
			continue
		}
		for k := range groups[i].Aux {
			if !slices.Contains(fields, k) {
				delete(groups[i].Aux, k)
			}
		}
		if len(groups[i].Aux) == 0 {
			groups[i].Aux = nil
		}
	}
	return groups
}
