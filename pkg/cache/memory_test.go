package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetExpiry(t *testing.T) {
	m := NewMemory()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	found, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got["a"])

	clock = clock.Add(2 * time.Minute)
	found, err = m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_Counters(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := m.Increment(ctx, "views:post:1")
		require.NoError(t, err)
	}
	_, err := m.Increment(ctx, "other")
	require.NoError(t, err)

	keys, err := m.Keys(ctx, "views:post:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"views:post:1"}, keys)

	n, ok, err := m.GetDelInt(ctx, "views:post:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(4), n)

	_, ok, err = m.GetDelInt(ctx, "views:post:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_DeletePattern(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "post:slug:a", "x", 0))
	require.NoError(t, m.Set(ctx, "post:slug:b", "y", 0))
	require.NoError(t, m.Set(ctx, "settings:all", "z", 0))

	require.NoError(t, m.DeletePattern(ctx, "post:slug:*"))

	keys, err := m.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"settings:all"}, keys)
}
