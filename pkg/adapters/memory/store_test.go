package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuebook/cuebook/pkg/adapters/memory"
)

func TestStoreRoundTrip(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "notes::a", "[]"))
	v, ok, err := s.Get(ctx, "notes::a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, s.Remove(ctx, "notes::a"))
	require.NoError(t, s.Remove(ctx, "notes::a")) // idempotent
	_, ok, _ = s.Get(ctx, "notes::a")
	assert.False(t, ok)
}

func TestStoreKeysMatching(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "notes::a", "[]"))
	require.NoError(t, s.Set(ctx, "notes::b", "[]"))
	require.NoError(t, s.Set(ctx, "groups::a", "[]"))

	all, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"groups::a", "notes::a", "notes::b"}, all)

	notes, err := s.KeysMatching(ctx, "notes::*")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes::a", "notes::b"}, notes)
}

func TestStoreHonorsContext(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Set(ctx, "k", "v"))
	_, _, err := s.Get(ctx, "k")
	assert.Error(t, err)
}
