package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
)

// Table names for the record store.
const (
	recordsTable = "trendline_records"
	eventsTable  = "trendline_events"
)

// eventDateFormat is how event timestamps are stored, always in UTC so they sort lexically.
const eventDateFormat = "2006-01-02T15:04:05Z"

// RecordStoreImpl implements the RecordStore interface on top of database/sql.
type RecordStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.RecordStore = &RecordStoreImpl{} // Compile-time check

// NewRecordStore migrates the schema to the latest version and opens the store.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return nil, fmt.Errorf("record store requires a database backend, got %q", backend)
	}
	if err := ensureSchema(backend, connStr); err != nil {
		return nil, err
	}
	db, err := openDB(backend, connStr, contract.GetStoreDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}
	return &RecordStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// periodKey packs a year and month into a sortable integer.
func periodKey(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

// LoadRecords returns the records of a metric dated in [from, to).
func (rs *RecordStoreImpl) LoadRecords(ctx context.Context, metric schema.Metric, from, to time.Time) ([]schema.DatedRecord, error) {
	query := rebind(fmt.Sprintf(`SELECT period_year, period_month, amount, group_key, group_name, aux_json FROM %s
		WHERE metric = ? AND (period_year * 100 + period_month) >= ? AND (period_year * 100 + period_month) < ?
		ORDER BY period_year, period_month, id`, quoteTableName(recordsTable, rs.backend)), rs.backend)

	rows, err := rs.db.QueryContext(ctx, query, string(metric), periodKey(from), periodKey(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", metric, err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.DatedRecord
	for rows.Next() {
		var rec schema.DatedRecord
		var auxJSON sql.NullString
		if err := rows.Scan(&rec.Year, &rec.Month, &rec.Value, &rec.GroupKey, &rec.GroupName, &auxJSON); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if auxJSON.Valid && auxJSON.String != "" {
			if err := json.Unmarshal([]byte(auxJSON.String), &rec.Aux); err != nil {
				return nil, fmt.Errorf("failed to decode aux fields of %s: %w", rec.GroupKey, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// LoadEvents returns the events dated in [from, to). An empty entity matches every entity.
func (rs *RecordStoreImpl) LoadEvents(ctx context.Context, entity string, from, to time.Time) ([]schema.Event, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT event_date, title, entity_key FROM %s WHERE event_date >= ? AND event_date < ?`,
		quoteTableName(eventsTable, rs.backend))
	args := []any{from.UTC().Format(eventDateFormat), to.UTC().Format(eventDateFormat)}
	if entity != "" {
		sb.WriteString(" AND entity_key = ?")
		args = append(args, entity)
	}
	sb.WriteString(" ORDER BY event_date, id")

	rows, err := rs.db.QueryContext(ctx, rebind(sb.String(), rs.backend), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []schema.Event
	for rows.Next() {
		var ev schema.Event
		var date string
		if err := rows.Scan(&date, &ev.Title, &ev.EntityKey); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Date, err = time.Parse(eventDateFormat, strings.TrimSpace(date))
		if err != nil {
			return nil, fmt.Errorf("invalid stored event date %q: %w", date, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// InsertRecords stores records for a metric in a single transaction.
func (rs *RecordStoreImpl) InsertRecords(ctx context.Context, metric schema.Metric, records []schema.DatedRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	query := rebind(fmt.Sprintf(`INSERT INTO %s (metric, period_year, period_month, group_key, group_name, amount, aux_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quoteTableName(recordsTable, rs.backend)), rs.backend)

	now := time.Now().Unix()
	return rs.insertAll(ctx, query, len(records), func(i int) ([]any, error) {
		rec := records[i]
		var auxJSON sql.NullString
		if len(rec.Aux) > 0 {
			data, err := json.Marshal(rec.Aux)
			if err != nil {
				return nil, fmt.Errorf("failed to encode aux fields of %s: %w", rec.GroupKey, err)
			}
			auxJSON = sql.NullString{String: string(data), Valid: true}
		}
		return []any{string(metric), rec.Year, rec.Month, rec.GroupKey, rec.GroupName, rec.Value, auxJSON, now}, nil
	})
}

// InsertEvents stores events in a single transaction.
func (rs *RecordStoreImpl) InsertEvents(ctx context.Context, events []schema.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	query := rebind(fmt.Sprintf(`INSERT INTO %s (event_date, entity_key, title) VALUES (?, ?, ?)`,
		quoteTableName(eventsTable, rs.backend)), rs.backend)

	return rs.insertAll(ctx, query, len(events), func(i int) ([]any, error) {
		ev := events[i]
		return []any{ev.Date.UTC().Format(eventDateFormat), ev.EntityKey, ev.Title}, nil
	})
}

// insertAll executes a prepared statement n times inside one transaction.
func (rs *RecordStoreImpl) insertAll(ctx context.Context, query string, n int, argsAt func(int) ([]any, error)) (int, error) {
	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range n {
		args, err := argsAt(i)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return n, nil
}

// Fingerprint changes whenever records of the metric or any events are added or removed.
func (rs *RecordStoreImpl) Fingerprint(ctx context.Context, metric schema.Metric) (string, error) {
	var recCount, recMax, evCount, evMax int64

	recQuery := rebind(fmt.Sprintf(`SELECT COUNT(*), COALESCE(MAX(id), 0) FROM %s WHERE metric = ?`,
		quoteTableName(recordsTable, rs.backend)), rs.backend)
	if err := rs.db.QueryRowContext(ctx, recQuery, string(metric)).Scan(&recCount, &recMax); err != nil {
		return "", fmt.Errorf("failed to fingerprint records: %w", err)
	}

	evQuery := fmt.Sprintf(`SELECT COUNT(*), COALESCE(MAX(id), 0) FROM %s`, quoteTableName(eventsTable, rs.backend))
	if err := rs.db.QueryRowContext(ctx, evQuery).Scan(&evCount, &evMax); err != nil {
		return "", fmt.Errorf("failed to fingerprint events: %w", err)
	}

	return fmt.Sprintf("r:%d:%d|e:%d:%d", recCount, recMax, evCount, evMax), nil
}

// GetStatus returns status information about the record store.
func (rs *RecordStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:          string(rs.backend),
		Connected:        rs.db != nil,
		RecordsPerMetric: make(map[schema.Metric]int),
		TableSizes:       make(map[string]int64),
	}
	if rs.db == nil {
		return status, nil
	}

	versionQuery := fmt.Sprintf("SELECT version FROM %s", quoteTableName(migrationsTable, rs.backend))
	if err := rs.db.QueryRow(versionQuery).Scan(&status.SchemaVersion); err != nil && err != sql.ErrNoRows {
		return status, fmt.Errorf("failed to get schema version: %w", err)
	}

	quotedRecords := quoteTableName(recordsTable, rs.backend)
	rows, err := rs.db.Query(fmt.Sprintf("SELECT metric, COUNT(*) FROM %s GROUP BY metric", quotedRecords))
	if err != nil {
		return status, fmt.Errorf("failed to count records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var metric string
		var count int
		if err := rows.Scan(&metric, &count); err != nil {
			return status, fmt.Errorf("failed to scan record count: %w", err)
		}
		status.RecordsPerMetric[schema.Metric(metric)] = count
		status.TotalRecords += count
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("failed to iterate record counts: %w", err)
	}

	if status.TotalRecords > 0 {
		var oldest, newest int
		rangeQuery := fmt.Sprintf("SELECT MIN(period_year * 100 + period_month), MAX(period_year * 100 + period_month) FROM %s", quotedRecords)
		if err := rs.db.QueryRow(rangeQuery).Scan(&oldest, &newest); err != nil {
			return status, fmt.Errorf("failed to get record range: %w", err)
		}
		status.OldestRecord = time.Date(oldest/100, time.Month(oldest%100), 1, 0, 0, 0, 0, time.UTC)
		status.NewestRecord = time.Date(newest/100, time.Month(newest%100), 1, 0, 0, 0, 0, time.UTC)
	}

	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(eventsTable, rs.backend))).Scan(&status.TotalEvents); err != nil {
		return status, fmt.Errorf("failed to count events: %w", err)
	}

	status.TableSizes[recordsTable] = tableSizeBytes(rs.db, rs.backend, rs.connStr, recordsTable, int64(status.TotalRecords)*200)
	status.TableSizes[eventsTable] = tableSizeBytes(rs.db, rs.backend, rs.connStr, eventsTable, int64(status.TotalEvents)*200)

	return status, nil
}

// Close closes the underlying DB connection.
func (rs *RecordStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
