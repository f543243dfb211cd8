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


// Package storage provides the embedding-cache abstraction for docsift.
//
// The cache memoizes embedding vectors keyed by content hash, so repeated
// runs over the same document corpus skip re-embedding unchanged text. It
// stores vectors only, never rankings or scores; every ranking pass is
// computed fresh from the batch at hand.
//
// # Constructor Return Type Pattern
//
// Public constructors return the VectorCache interface to enforce
// abstraction and keep alternative backends swappable:
//
//	cache, err := badger.NewVectorCache(path)  // returns storage.VectorCache
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryCache()
//
// # Thread Safety
//
// All cache implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All cache methods accept context.Context. Pass context.Background() for
// operations without specific timeout requirements.
package storage
