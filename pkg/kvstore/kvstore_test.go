package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	store.Save(ctx, "k", record{Name: "a", Count: 3})

	var got record
	require.True(t, store.Load(ctx, "k", &got))
	assert.Equal(t, record{Name: "a", Count: 3}, got)
}

func TestMemoryAbsentKey(t *testing.T) {
	store := NewMemory()
	var got string
	assert.False(t, store.Load(context.Background(), "missing", &got))
}

func TestMemoryMalformedValueFallsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	store.Save(ctx, "k", "not a number")

	var got int
	assert.False(t, store.Load(ctx, "k", &got), "type mismatch must read as absent")
}

func TestAsyncSavesReachInnerStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	async := NewAsync(inner, 8)
	async.Start()

	async.Save(ctx, "k1", 1)
	async.Save(ctx, "k1", 2)
	async.Save(ctx, "k2", "x")
	async.Shutdown() // drains the queue

	var n int
	require.True(t, inner.Load(ctx, "k1", &n))
	assert.Equal(t, 2, n, "latest value wins per key")

	var s string
	require.True(t, async.Load(ctx, "k2", &s))
	assert.Equal(t, "x", s)
}
