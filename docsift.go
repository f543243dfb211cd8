// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package docsift ranks sections extracted from PDF documents by their
// relevance to a persona and job-to-be-done.
//
// The Engine type wires the PDF layout source, the embedding backend with
// its optional on-disk vector cache, the hybrid scorer and the analysis
// pipeline into a single entry point. Finer-grained use goes through the
// subpackages directly.
package docsift

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/ai/openai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/layout"
	pdfsource "github.com/poiesic/docsift/layout/pdf"
	"github.com/poiesic/docsift/pipeline"
	"github.com/poiesic/docsift/ranking"
	"github.com/poiesic/docsift/report"
	"github.com/poiesic/docsift/storage"
	"github.com/poiesic/docsift/storage/badger"
)

// Engine is the top-level document analysis facade.
type Engine struct {
	cache    storage.VectorCache
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	cachePath      string
	poolSize       int
	progressWriter io.Writer
	logger         *slog.Logger
	embedder       ai.Embedder
}

// WithAIConfig sets the embedding backend configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithCachePath enables an on-disk embedding cache at the given path.
// Default is no cache: every embedding is recomputed.
func WithCachePath(path string) EngineOption {
	return func(o *engineOptions) {
		o.cachePath = path
	}
}

// WithPoolSize sets the extraction worker pool size.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithProgress enables per-document progress reporting to the given writer.
func WithProgress(writer io.Writer) EngineOption {
	return func(o *engineOptions) {
		o.progressWriter = writer
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithEmbedder overrides the embedding backend entirely, bypassing
// WithAIConfig. Intended for tests and embedded use.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// NewEngine creates a ready-to-run analysis engine.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	var cache storage.VectorCache
	if options.cachePath != "" {
		var err error
		cache, err = badger.NewVectorCache(options.cachePath)
		if err != nil {
			return nil, err
		}

		embedder, err = ai.NewCachingEmbedder(embedder, cache, options.aiConfig.EmbeddingModel,
			ai.WithCachingLogger(options.logger))
		if err != nil {
			cache.Close()
			return nil, err
		}
	}

	extractor, err := layout.NewExtractor(pdfsource.NewSource(), layout.WithLogger(options.logger))
	if err != nil {
		closeCache(cache, options.logger)
		return nil, err
	}

	scorer, err := ranking.NewScorer(embedder, ranking.WithLogger(options.logger))
	if err != nil {
		closeCache(cache, options.logger)
		return nil, err
	}

	pipeOpts := []pipeline.Option{pipeline.WithLogger(options.logger)}
	if options.poolSize > 0 {
		pipeOpts = append(pipeOpts, pipeline.WithPoolSize(options.poolSize))
	}
	if options.progressWriter != nil {
		pipeOpts = append(pipeOpts, pipeline.WithProgress(options.progressWriter))
	}

	pipe, err := pipeline.NewPipeline(extractor, scorer, pipeOpts...)
	if err != nil {
		closeCache(cache, options.logger)
		return nil, err
	}

	return &Engine{
		cache:    cache,
		pipeline: pipe,
		logger:   options.logger,
	}, nil
}

// Analyze runs the full pipeline over the given documents and returns the
// assembled report. topK bounds the ranked sections, topP the refined
// sub-passages per section.
func (e *Engine) Analyze(ctx context.Context, query core.PersonaQuery, paths []string, topK, topP int) (*report.Report, error) {
	return e.pipeline.Run(ctx, query, paths, topK, topP)
}

// Close releases the worker pool and the embedding cache.
// The engine should not be used after calling Close.
func (e *Engine) Close() error {
	e.pipeline.Release()

	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing embedding cache", "err", err)
			return err
		}
	}
	return nil
}

func closeCache(cache storage.VectorCache, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Close(); err != nil {
		logger.Error("error closing embedding cache", "err", err)
	}
}
