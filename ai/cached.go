package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// CachingEmbedder decorates an Embedder with a persistent vector cache.
// Texts already embedded under the same model are served from the cache;
// only misses are forwarded to the inner embedder, still as one batch.
type CachingEmbedder struct {
	inner  Embedder
	cache  storage.VectorCache
	model  string
	logger *slog.Logger
}

// CachingOption configures a CachingEmbedder.
type CachingOption func(*CachingEmbedder)

// WithCachingLogger sets a custom logger.
// Default is slog.Default().
func WithCachingLogger(logger *slog.Logger) CachingOption {
	return func(e *CachingEmbedder) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewCachingEmbedder wraps inner with cache. The model identifier is part
// of every cache key, so switching models never serves stale vectors.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewCachingEmbedder(inner Embedder, cache storage.VectorCache, model string, opts ...CachingOption) (Embedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}

	e := &CachingEmbedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		logger: slog.Default().With("component", "caching-embedder"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// EmbedText generates or retrieves the embedding for a single text.
func (e *CachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates or retrieves embeddings for a batch of texts.
// Cache misses are embedded in a single inner batch call and written back;
// result order matches input order.
func (e *CachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	ids := make([]core.ID, len(texts))

	var missTexts []string
	var missIndexes []int

	for i, text := range texts {
		ids[i] = e.cacheKey(text)
		record, err := e.cache.GetVector(ctx, ids[i])
		if err != nil {
			// Cache trouble degrades to a miss, never fails the batch.
			e.logger.Warn("vector cache read failed", "err", err)
		}
		if record != nil && err == nil {
			vectors[i] = record.Vector
			continue
		}
		missTexts = append(missTexts, text)
		missIndexes = append(missIndexes, i)
	}

	e.logger.Debug("vector cache lookup",
		"texts", len(texts), "hits", len(texts)-len(missTexts), "misses", len(missTexts))

	if len(missTexts) == 0 {
		return vectors, nil
	}

	embedded, err := e.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missTexts) {
		return nil, ErrEmbeddingCountMismatch
	}

	now := time.Now().UTC()
	for j, vector := range embedded {
		i := missIndexes[j]
		vectors[i] = vector

		record := &core.EmbeddingRecord{
			Model:     e.model,
			Vector:    vector,
			CreatedAt: now,
		}
		if err := e.cache.PutVector(ctx, ids[i], record); err != nil {
			e.logger.Warn("vector cache write failed", "err", err)
		}
	}

	return vectors, nil
}

// cacheKey derives the content-addressed cache ID for a text under the
// configured model. The NUL separator keeps model/text pairs unambiguous.
func (e *CachingEmbedder) cacheKey(text string) core.ID {
	return core.IDFromContent(e.model + "\x00" + text)
}
