package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDataDefaults(t *testing.T) {
	c, err := LoadConfigData([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, StorageFile, c.Storage.Type)
	assert.Equal(t, "webwriter", c.Storage.Key)
	assert.Equal(t, time.Second, c.GetWatchInterval())
	assert.Equal(t, 100, c.Store.HistoryKeepVersions)
	assert.Equal(t, "Untitled", c.Store.DefaultSpaceName)
	assert.Equal(t, 2000.0, c.Store.SpaceWidth)
	assert.Equal(t, 1500.0, c.Store.SpaceHeight)
	assert.Equal(t, "#ffffff", c.Store.CardColor)
	assert.Equal(t, ":9001", c.Server.PrivateHttpListen)

	sc := c.GetStoreConfig()
	assert.Equal(t, "webwriter", sc.Key)
	assert.Equal(t, 100, sc.HistoryKeepVersions)
}

func TestLoadConfigDataOverrides(t *testing.T) {
	c, err := LoadConfigData([]byte(`
storage:
  type: database
  watch-interval: 250ms
database:
  type: mysql
  host: db.local
  port: 3307
  conn-max-lifetime: 1h
store:
  history-keep-versions: 5
  card-color: "#ffeeaa"
`))
	require.NoError(t, err)

	assert.Equal(t, StorageDatabase, c.Storage.Type)
	assert.Equal(t, 250*time.Millisecond, c.GetWatchInterval())
	assert.Equal(t, 5, c.Store.HistoryKeepVersions)
	assert.Equal(t, "#ffeeaa", c.GetStoreConfig().CardColor)

	dc := c.GetDatabaseConfig()
	assert.Equal(t, "mysql", dc.Type)
	assert.Equal(t, 3307, dc.Port)
	assert.Equal(t, time.Hour, dc.ConnMaxLifetime)
	assert.Equal(t, "utf8mb4", dc.Charset)
}

func TestLoadConfigDataValidation(t *testing.T) {
	tests := []string{
		"storage:\n  type: s3\n",
		"log:\n  level: loud\n",
		"storage:\n  key: a/b\n",
		"storage:\n  watch-interval: soon\n",
		"database:\n  port: 70000\n",
		"store:\n  history-keep-versions: -1\n",
		"storage: [",
	}
	for _, data := range tests {
		_, err := LoadConfigData([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestLoadConfigAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: memory\n"), 0o644))

	c, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, realpath)
	assert.Equal(t, StorageMemory, c.Storage.Type)

	c.Store.DefaultSpaceName = "Inbox"
	require.NoError(t, c.Save())

	again, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Inbox", again.Store.DefaultSpaceName)
	assert.Equal(t, StorageMemory, again.Storage.Type)

	_, _, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
