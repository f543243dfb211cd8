package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// VectorCache implements storage.VectorCache backed by BadgerDB.
type VectorCache struct {
	backend *Backend
	// ownsBackend is true when the cache opened the backend itself and is
	// responsible for closing it.
	ownsBackend bool
}

var _ storage.VectorCache = (*VectorCache)(nil)

// newVectorCache is an internal constructor that returns the concrete type.
func newVectorCache(backend *Backend, ownsBackend bool) (*VectorCache, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &VectorCache{backend: backend, ownsBackend: ownsBackend}, nil
}

// NewVectorCache opens a persistent vector cache at the given path.
//
// Returns storage.VectorCache interface to enforce abstraction.
func NewVectorCache(filePath string) (storage.VectorCache, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return newVectorCache(backend, true)
}

// NewCacheOnBackend creates a vector cache on an already-open backend.
// The caller retains ownership of the backend.
func NewCacheOnBackend(backend *Backend) (storage.VectorCache, error) {
	return newVectorCache(backend, false)
}

// GetVector retrieves a cached embedding record by ID.
// Returns (nil, nil) on a cache miss.
func (c *VectorCache) GetVector(ctx context.Context, id core.ID) (*core.EmbeddingRecord, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *core.EmbeddingRecord
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalEmbeddingRecord(val)
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// PutVector stores an embedding record under the given ID,
// overwriting any existing entry.
func (c *VectorCache) PutVector(ctx context.Context, id core.ID, record *core.EmbeddingRecord) error {
	if record == nil {
		return storage.ErrNilRecord
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEmbeddingKey(id), storage.MarshalEmbeddingRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the cache and, when it owns the backend, the backend too.
func (c *VectorCache) Close() error {
	if c.ownsBackend {
		return c.backend.Close()
	}
	return nil
}
