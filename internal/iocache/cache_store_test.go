package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(viewTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("k1", []byte(`{"metric":"sales"}`), 1, now))
	value, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"metric":"sales"}`, string(value))
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)

	// Upsert replaces the previous entry
	require.NoError(t, store.Set("k1", []byte(`{}`), 2, now+10))
	value, version, ts, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(value))
	assert.Equal(t, 2, version)
	assert.Equal(t, now+10, ts)

	require.NoError(t, store.Set("k2", []byte(`[]`), 1, now-100))
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, now+10, status.LastEntryTime.Unix())
	assert.Equal(t, now-100, status.OldestEntryTime.Unix())
	assert.Positive(t, status.TableSizeBytes)
}

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore(viewTable, schema.NoneBackend, "")
	require.NoError(t, err)
	assert.Nil(t, store, "caching disabled means no store at all")
}

func TestCacheStore_InvalidTableName(t *testing.T) {
	for _, name := range []string{"", "1table", "drop table;", "a-b"} {
		_, err := NewCacheStore(name, schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
		assert.Error(t, err, name)
	}
}

func TestCacheStore_UnsupportedBackend(t *testing.T) {
	_, err := NewCacheStore(viewTable, schema.DatabaseBackend("redis"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c < ?"
	assert.Equal(t, query, rebind(query, schema.SQLiteBackend))
	assert.Equal(t, query, rebind(query, schema.MySQLBackend))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c < $2", rebind(query, schema.PostgreSQLBackend))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery("v", schema.MySQLBackend), "LONGBLOB")
	assert.Contains(t, getCreateTableQuery("v", schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery("v", schema.SQLiteBackend), "BLOB")
}
