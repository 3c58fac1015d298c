package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/sprintlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStore_SQLite(t *testing.T) {
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	t.Run("miss", func(t *testing.T) {
		_, _, _, err := store.Get("missing")
		assert.Error(t, err)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set("k1", []byte(`{"days":30}`), 1, 1000))
		value, version, ts, err := store.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"days":30}`), value)
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1000), ts)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		require.NoError(t, store.Set("k1", []byte(`{}`), 2, 2000))
		value, version, ts, err := store.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), value)
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("status", func(t *testing.T) {
		require.NoError(t, store.Set("k2", []byte(`[]`), 1, 500))
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 2, status.TotalEntries)
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(500, 0), status.OldestEntryTime)
		assert.Positive(t, status.TableSizeBytes)
	})
}

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("test_key")
	assert.Error(t, err, "Expected error from Get on none backend")

	assert.NoError(t, store.Set("test_key", []byte("test_value"), 1, 123456789))

	_, _, _, err = store.Get("test_key")
	assert.Error(t, err, "Set is a no-op on none backend")

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestNewCacheStore_Errors(t *testing.T) {
	_, err := NewCacheStore("bad-name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)

	_, err = NewCacheStore("test_table", schema.DatabaseBackend("redis"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		contains []string
	}{
		{schema.SQLiteBackend, []string{`INSERT OR REPLACE INTO "cfd_cache"`, "VALUES (?, ?, ?, ?)"}},
		{schema.MySQLBackend, []string{"INSERT INTO `cfd_cache`", "ON DUPLICATE KEY UPDATE"}},
		{schema.PostgreSQLBackend, []string{`INSERT INTO "cfd_cache"`, "VALUES ($1, $2, $3, $4)", "ON CONFLICT (cache_key)"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			ps := &CacheStoreImpl{tableName: resultTable, backend: tt.backend}
			query := ps.getUpsertQuery()
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
		})
	}
}
