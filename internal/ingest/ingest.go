// Package ingest reads records and events from CSV files.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
)

// Required leading columns of each file kind.
var (
	recordColumns = []string{"date", "group_key", "group_name", "value"}
	eventColumns  = []string{"date", "entity", "title"}
)

// RowError reports a malformed row. Row numbers are 1-based and count the header.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadRecordsFile opens path and parses it with ReadRecords.
func ReadRecordsFile(path string) ([]schema.DatedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadRecords(f)
}

// ReadEventsFile opens path and parses it with ReadEvents.
func ReadEventsFile(path string) ([]schema.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening events file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadEvents(f)
}

// ReadRecords parses a CSV with header date,group_key,group_name,value followed by
// optional auxiliary columns. Empty numeric cells are treated as absent.
func ReadRecords(r io.Reader) ([]schema.DatedRecord, error) {
	cr := newReader(r)
	header, err := readHeader(cr, recordColumns)
	if err != nil {
		return nil, err
	}
	auxNames := header[len(recordColumns):]

	var records []schema.DatedRecord
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		rec, err := parseRecord(fields, auxNames)
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadEvents parses a CSV with header date,entity,title.
func ReadEvents(r io.Reader) ([]schema.Event, error) {
	cr := newReader(r)
	if _, err := readHeader(cr, eventColumns); err != nil {
		return nil, err
	}

	var events []schema.Event
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		date, err := contract.ParseEventDate(fields[0])
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		title := strings.TrimSpace(fields[2])
		if title == "" {
			return nil, &RowError{Row: row, Err: errors.New("title is empty")}
		}
		events = append(events, schema.Event{
			Date:      date,
			EntityKey: strings.TrimSpace(fields[1]),
			Title:     title,
		})
	}
	return events, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	return cr
}

// readHeader checks the leading columns and returns the normalized header.
func readHeader(cr *csv.Reader, want []string) ([]string, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, &RowError{Row: 1, Err: err}
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if len(header) < len(want) {
		return nil, &RowError{Row: 1, Err: fmt.Errorf("expected header %s", strings.Join(want, ","))}
	}
	for i, col := range want {
		if header[i] != col {
			return nil, &RowError{Row: 1, Err: fmt.Errorf("column %d must be %q, got %q", i+1, col, header[i])}
		}
	}
	return header, nil
}

func parseRecord(fields, auxNames []string) (schema.DatedRecord, error) {
	date, err := contract.ParseRecordDate(fields[0])
	if err != nil {
		return schema.DatedRecord{}, err
	}
	key := strings.TrimSpace(fields[1])
	if key == "" {
		return schema.DatedRecord{}, errors.New("group_key is empty")
	}
	value, _, err := parseNumber(fields[3])
	if err != nil {
		return schema.DatedRecord{}, fmt.Errorf("value: %w", err)
	}

	rec := schema.DatedRecord{
		Year:      date.Year(),
		Month:     int(date.Month()),
		Value:     value,
		GroupKey:  key,
		GroupName: strings.TrimSpace(fields[2]),
	}
	for i, name := range auxNames {
		v, ok, err := parseNumber(fields[len(recordColumns)+i])
		if err != nil {
			return schema.DatedRecord{}, fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			continue
		}
		if rec.Aux == nil {
			rec.Aux = make(map[string]float64, len(auxNames))
		}
		rec.Aux[name] = v
	}
	return rec, nil
}

// parseNumber returns ok=false for an empty cell. NaN and infinities are rejected.
func parseNumber(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("number %q is not finite", s)
	}
	return v, true, nil
}
