package app

import (
	"path/filepath"
	"testing"

	"github.com/ivywong/webwriter/internal/dao"
	"github.com/ivywong/webwriter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewAppRequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, zap.NewNop())
	assert.Error(t, err)

	c, err := LoadConfigData(nil)
	require.NoError(t, err)
	_, err = NewApp(c, nil)
	assert.Error(t, err)
}

func TestNewAppBridges(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		yaml string
	}{
		{"memory", "storage:\n  type: memory\n"},
		{"file", "storage:\n  type: file\n  path: " + filepath.Join(dir, "data") + "\n"},
		{"database", "storage:\n  type: database\ndatabase:\n  type: sqlite\n  path: " + filepath.Join(dir, "db", "w.sqlite3") + "\n  max-open-conns: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadConfigData([]byte(tt.yaml))
			require.NoError(t, err)

			a, err := NewApp(c, zap.NewNop())
			require.NoError(t, err)
			defer func() { assert.NoError(t, a.Close()) }()

			card := a.Store.AddCard(domain.Position{W: domain.AutoWidth}, tt.name)
			v, ok, err := a.Bridge.Read(c.Storage.Key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Contains(t, v, card.ContentID)
		})
	}
}

func TestNewAppWithBridge(t *testing.T) {
	c, err := LoadConfigData(nil)
	require.NoError(t, err)
	origin := dao.NewMemoryOrigin()

	a, err := NewApp(c, zap.NewNop(), WithBridge(origin.Open()))
	require.NoError(t, err)
	defer a.Close()

	a.Store.AddSpace("shared")
	_, ok := origin.Get(c.Storage.Key)
	assert.True(t, ok)
	assert.Equal(t, "0.1.0", a.Version().Version)
}
