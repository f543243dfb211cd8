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


// Package ranking implements the hybrid relevance-ranking engine.
//
// The Scorer fuses four signals into a single relevance score:
//
//   - Semantic: cosine similarity between query and text embeddings
//   - Keyword: Jaccard overlap of meaningful words plus a verbatim
//     phrase-match boost, clamped to 1.0
//   - Position: earlier pages score higher, decaying as 1/sqrt(page)
//   - Length: moderate-length sections (200-500 words) score highest
//
// Scoring runs at two granularities. Section mode weighs all four signals
// (0.65/0.20/0.10/0.05); sub-passage mode compares paragraphs within an
// already-selected section on semantic and keyword signals alone (0.8/0.2).
// The weights are fixed behavioral constants, not tunables.
//
// Embedding calls are batched: one call for all candidate texts in a
// ranking pass plus one for the query, never one call per candidate.
package ranking
