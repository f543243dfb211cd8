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

package docsift

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/docsift/ai/mock"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("with mock embedder", func(t *testing.T) {
		engine, err := NewEngine(WithEmbedder(mock.NewMockEmbedder()))
		require.NoError(t, err)
		require.NoError(t, engine.Close())
	})

	t.Run("with cache and pool size", func(t *testing.T) {
		cachePath := filepath.Join(t.TempDir(), "cache")
		engine, err := NewEngine(
			WithEmbedder(mock.NewMockEmbedder()),
			WithCachePath(cachePath),
			WithPoolSize(2),
			WithLogger(nil),
		)
		require.NoError(t, err)
		require.NoError(t, engine.Close())
	})
}

func TestEngineAnalyze(t *testing.T) {
	engine, err := NewEngine(WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	defer engine.Close()

	query := core.PersonaQuery{Role: "Analyst", Task: "Find revenue trends"}

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := engine.Analyze(context.Background(), query, nil, 15, 3)
		assert.ErrorIs(t, err, pipeline.ErrNoInputDocuments)
	})

	t.Run("fails when no document is readable", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.pdf")
		_, err := engine.Analyze(context.Background(), query, []string{missing}, 15, 3)
		assert.ErrorIs(t, err, pipeline.ErrNoSections)
	})

	t.Run("validates query", func(t *testing.T) {
		_, err := engine.Analyze(context.Background(), core.PersonaQuery{}, []string{"x.pdf"}, 15, 3)
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})
}
