package dao

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBridgeReadWrite(t *testing.T) {
	tab := NewMemoryOrigin().Open()

	_, ok, err := tab.Read("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tab.Write("k", "v1"))
	v, ok, err := tab.Read("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	require.NoError(t, tab.Remove("k"))
	_, ok, _ = tab.Read("k")
	assert.False(t, ok)
}

func TestMemoryBridgeNotifiesOtherTabsOnly(t *testing.T) {
	origin := NewMemoryOrigin()
	a, b := origin.Open(), origin.Open()

	var aCalls, bCalls atomic.Int32
	stopA, err := a.Watch("k", func() { aCalls.Add(1) })
	require.NoError(t, err)
	defer stopA()
	stopB, err := b.Watch("k", func() { bCalls.Add(1) })
	require.NoError(t, err)

	require.NoError(t, a.Write("k", "v1"))
	assert.Eventually(t, func() bool { return bCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// 相同的值不通知
	require.NoError(t, a.Write("k", "v1"))
	// 其他键不通知
	require.NoError(t, a.Write("other", "x"))

	require.NoError(t, b.Remove("k"))
	assert.Eventually(t, func() bool { return aCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	stopB()
	require.NoError(t, a.Write("k", "v2"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), bCalls.Load())
	assert.Equal(t, int32(1), aCalls.Load())
}

func TestMemoryBridgeClosedTabIsSilent(t *testing.T) {
	origin := NewMemoryOrigin()
	a, b := origin.Open(), origin.Open()

	var calls atomic.Int32
	_, err := b.Watch("k", func() { calls.Add(1) })
	require.NoError(t, err)
	b.Close()

	require.NoError(t, a.Write("k", "v"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	v, ok := origin.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
