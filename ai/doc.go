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


// Package ai provides the embedding capability used by the ranking engine.
//
// The package defines the Embedder interface and follows the dependency
// inversion principle: the ranking core depends on the abstraction, not on
// any concrete embedding service.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles for unit testing without
//     external dependencies
//
// # Constructor Return Type Pattern
//
// Public production constructors (openai.NewEmbedder) return the INTERFACE
// type to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder) return CONCRETE types to enable behavior injection
// and call-count assertions.
//
// # Batching
//
// EmbedTexts is the efficiency contract of the ranking engine: one batched
// call per ranking pass, never one call per candidate. The CachingEmbedder
// decorator preserves this contract by only forwarding cache misses, still
// in a single batch.
package ai
