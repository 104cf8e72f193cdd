package memdb_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/tonrpc/internal/cache"
	"github.com/hedisam/tonrpc/internal/cache/memdb"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memdb.New(memdb.WithMemSize(2))

	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	got[0] = 'x'
	got, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestStoreEvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := memdb.New(memdb.WithMemSize(3))

	for i := range 5 {
		require.NoError(t, s.Set(ctx, fmt.Sprintf("k%d", i), []byte{byte(i)}))
	}
	assert.Equal(t, 3, s.Len())

	for _, key := range []string{"k0", "k1"} {
		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrMiss, key)
	}
	for i, key := range []string{"k2", "k3", "k4"} {
		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i + 2)}, got)
	}
}

func TestStoreOverwriteKeepsSize(t *testing.T) {
	ctx := context.Background()
	s := memdb.New(memdb.WithMemSize(2))

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "a", []byte("2")))
	require.NoError(t, s.Set(ctx, "b", []byte("3")))
	assert.Equal(t, 2, s.Len())

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}
