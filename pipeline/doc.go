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

// Package pipeline orchestrates the end-to-end document analysis run:
// concurrent section extraction across input documents, relevance ranking
// against a persona query, and assembly of the final report.
//
// Extraction is fanned out over a worker pool. Documents that cannot be
// read are logged and skipped rather than failing the whole run; the
// result order is always the input order regardless of worker scheduling.
package pipeline
