package dao

import (
	"testing"
	"time"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, b domain.PersistenceBridge) *service.Store {
	t.Helper()
	s, err := service.NewStore(b, nil, service.StoreConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoresInTwoTabsConverge(t *testing.T) {
	origin := NewMemoryOrigin()
	a := openStore(t, origin.Open())
	a.AddCard(domain.Position{X: 1, W: domain.AutoWidth}, "seed")
	b := openStore(t, origin.Open())

	require.Len(t, b.CurrentSpace().Cards, 1)

	card := a.AddCard(domain.Position{X: 2, W: domain.AutoWidth}, "from tab a")

	assert.Eventually(t, func() bool {
		_, ok := b.GetCard(card.ContentID)
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.False(t, b.CanUndo())

	// 最后写入者胜出
	b.UpdateBlockContent(card.ContentID, "edited in tab b")
	assert.Eventually(t, func() bool {
		block, ok := a.GetBlock(card.ContentID)
		return ok && block.Content == "edited in tab b"
	}, time.Second, 5*time.Millisecond)
}

func TestStoreOverFileBridgeSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	fb, err := NewFileBridge(dir, 10*time.Millisecond, nil)
	require.NoError(t, err)
	s := openStore(t, fb)
	card := s.AddCard(domain.Position{W: domain.AutoWidth}, "persisted")
	require.NoError(t, s.Close())

	fb2, err := NewFileBridge(dir, 10*time.Millisecond, nil)
	require.NoError(t, err)
	s2 := openStore(t, fb2)
	block, ok := s2.GetBlock(card.ContentID)
	require.True(t, ok)
	assert.Equal(t, "persisted", block.Content)
}

func TestStoreOverDBBridgeSurvivesRestart(t *testing.T) {
	db := newTestDB(t)
	b1, err := NewDBBridge(db, 10*time.Millisecond, nil)
	require.NoError(t, err)
	s := openStore(t, b1)
	sp := s.AddSpace("db space")
	require.NoError(t, s.Close())

	b2, err := NewDBBridge(db, 10*time.Millisecond, nil)
	require.NoError(t, err)
	s2 := openStore(t, b2)
	got, err := s2.GetSpace(sp.ID)
	require.NoError(t, err)
	assert.Equal(t, "db space", got.Name)
}
