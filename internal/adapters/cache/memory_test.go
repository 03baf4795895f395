package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, found, err := c.Get(ctx, "events:missing")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte("snapshot")
	require.NoError(t, c.Set(ctx, "events:k", value, time.Minute))
	value[0] = 'X'

	got, found, err := c.Get(ctx, "events:k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "snapshot", string(got), "stored value is a copy")

	got[0] = 'Y'
	again, found, err := c.Get(ctx, "events:k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "snapshot", string(again), "returned value is a copy")
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	require.NoError(t, c.Set(ctx, "events:k", []byte("v"), 50*time.Millisecond))
	_, found, _ := c.Get(ctx, "events:k")
	require.True(t, found)

	time.Sleep(80 * time.Millisecond)
	_, found, _ = c.Get(ctx, "events:k")
	assert.False(t, found)
}
