package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	backend, err := OpenBackend(t.TempDir(), false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func newTestCache(t *testing.T) storage.VectorCache {
	t.Helper()
	cache, err := NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func testRecord() *core.EmbeddingRecord {
	return &core.EmbeddingRecord{
		Model:     "embeddinggemma",
		Vector:    []float32{0.1, 0.2, 0.3},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestVectorCache_PutGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	id := core.IDFromContent("some text")
	record := testRecord()

	require.NoError(t, cache.PutVector(ctx, id, record))

	got, err := cache.GetVector(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.Model, got.Model)
	assert.Equal(t, record.Vector, got.Vector)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
}

func TestVectorCache_MissReturnsNilNil(t *testing.T) {
	cache := newTestCache(t)

	got, err := cache.GetVector(context.Background(), core.ID(12345))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVectorCache_Overwrite(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	id := core.IDFromContent("text")

	first := testRecord()
	require.NoError(t, cache.PutVector(ctx, id, first))

	second := testRecord()
	second.Vector = []float32{9, 9, 9}
	require.NoError(t, cache.PutVector(ctx, id, second))

	got, err := cache.GetVector(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []float32{9, 9, 9}, got.Vector)
}

func TestVectorCache_NilRecord(t *testing.T) {
	cache := newTestCache(t)

	err := cache.PutVector(context.Background(), core.ID(1), nil)
	assert.ErrorIs(t, err, storage.ErrNilRecord)
}

func TestVectorCache_ClosedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	cache, err := NewCacheOnBackend(backend)
	require.NoError(t, err)

	require.NoError(t, backend.Close())

	_, err = cache.GetVector(context.Background(), core.ID(1))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = cache.PutVector(context.Background(), core.ID(1), testRecord())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestVectorCache_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	id := core.IDFromContent("persisted")

	cache, err := NewVectorCache(dir)
	require.NoError(t, err)
	require.NoError(t, cache.PutVector(ctx, id, testRecord()))
	require.NoError(t, cache.Close())

	reopened, err := NewVectorCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetVector(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, got.Vector)
}
