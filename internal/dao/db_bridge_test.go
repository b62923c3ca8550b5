package dao

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDBEngine(DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "db", "webwriter.sqlite3"),
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestNewDBEngineRejectsUnknownType(t *testing.T) {
	_, err := NewDBEngine(DatabaseConfig{Type: "oracle"}, nil)
	assert.Error(t, err)

	_, err = NewDBEngine(DatabaseConfig{Type: "sqlite"}, nil)
	assert.Error(t, err)
}

func TestDBBridgeReadWriteRemove(t *testing.T) {
	b, err := NewDBBridge(newTestDB(t), 10*time.Millisecond, nil)
	require.NoError(t, err)

	_, ok, err := b.Read("webwriter")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Write("webwriter", "v1"))
	require.NoError(t, b.Write("webwriter", "v2"))
	v, ok, err := b.Read("webwriter")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, b.Remove("webwriter"))
	_, ok, err = b.Read("webwriter")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDBBridgeWatchSeesOtherWriters(t *testing.T) {
	db := newTestDB(t)
	mine, err := NewDBBridge(db, 10*time.Millisecond, nil)
	require.NoError(t, err)
	theirs, err := NewDBBridge(db, 10*time.Millisecond, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	stop, err := mine.Watch("webwriter", func() { calls.Add(1) })
	require.NoError(t, err)
	defer stop()

	require.NoError(t, theirs.Write("webwriter", "theirs"))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// 自身写入与相同值的写入都不通知
	require.NoError(t, mine.Write("webwriter", "mine"))
	require.NoError(t, theirs.Write("webwriter", "mine"))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	require.NoError(t, theirs.Remove("webwriter"))
	require.NoError(t, theirs.Write("webwriter", "mine"))
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
