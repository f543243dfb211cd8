package storage

import (
	"context"

	"github.com/poiesic/docsift/core"
)

// VectorCache provides persistent storage for embedding vectors keyed by
// content-derived IDs. Implementations must be thread-safe.
type VectorCache interface {
	// GetVector retrieves a cached embedding record by ID.
	// Returns (nil, nil) on a cache miss.
	GetVector(ctx context.Context, id core.ID) (*core.EmbeddingRecord, error)

	// PutVector stores an embedding record under the given ID,
	// overwriting any existing entry.
	PutVector(ctx context.Context, id core.ID, record *core.EmbeddingRecord) error

	// Close closes the storage backend and releases resources.
	Close() error
}
