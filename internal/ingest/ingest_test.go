package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	input := `date,group_key,group_name,value,quantity,unit_price
2024-01-15,sku-1,Widget,12.5,3,4.1
2024-02,sku-2,Gadget,7,,
2024-02-29, sku-1 ,Widget,,1,
`
	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 2024, records[0].Year)
	assert.Equal(t, 1, records[0].Month)
	assert.InDelta(t, 12.5, records[0].Value, 1e-9)
	assert.Equal(t, "Widget", records[0].GroupName)
	assert.Equal(t, map[string]float64{"quantity": 3, "unit_price": 4.1}, records[0].Aux)

	assert.Equal(t, 2, records[1].Month)
	assert.Nil(t, records[1].Aux, "empty aux cells are absent")

	assert.Equal(t, "sku-1", records[2].GroupKey)
	assert.Zero(t, records[2].Value, "empty value contributes zero")
	assert.Equal(t, map[string]float64{"quantity": 1}, records[2].Aux)
}

func TestReadRecordsErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRow int
	}{
		{"bad header", "when,group_key,group_name,value\n", 1},
		{"short header", "date,group_key\n", 1},
		{"bad date", "date,group_key,group_name,value\n2024/01/01,a,A,1\n", 2},
		{"bad value", "date,group_key,group_name,value\n2024-01-01,a,A,1\n2024-01-02,a,A,lots\n", 3},
		{"nan value", "date,group_key,group_name,value\n2024-01-01,a,A,NaN\n", 2},
		{"infinite value", "date,group_key,group_name,value\n2024-01-01,a,A,1\n2024-01-02,a,A,+Inf\n", 3},
		{"infinite aux", "date,group_key,group_name,value,quantity\n2024-01-01,a,A,1,-inf\n", 2},
		{"missing key", "date,group_key,group_name,value\n2024-01-01,,A,1\n", 2},
		{"wrong field count", "date,group_key,group_name,value\n2024-01-01,a,A\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(tt.input))
			require.Error(t, err)
			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, tt.wantRow, rowErr.Row)
		})
	}
}

func TestReadRecordsEmpty(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""))
	assert.Error(t, err)

	records, err := ReadRecords(strings.NewReader("date,group_key,group_name,value\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadEvents(t *testing.T) {
	input := "date,entity,title\n2024-05-31,sku-1,Price change\n2024-06-01,,Plant shutdown\n"
	events, err := ReadEvents(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), events[0].Date)
	assert.Equal(t, "sku-1", events[0].EntityKey)
	assert.Equal(t, "Plant shutdown", events[1].Title)

	events, err = ReadEvents(strings.NewReader("date,entity,title\n2024-05-31T16:20:00Z,sku-1,Recall\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2024, time.May, 31, 16, 20, 0, 0, time.UTC), events[0].Date)

	_, err = ReadEvents(strings.NewReader("date,entity,title\n2024-05-31,sku-1,\n"))
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,entity,title\n2024-01-01,a,Launch\n"), 0o644))

	events, err := ReadEventsFile(path)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	_, err = ReadRecordsFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
