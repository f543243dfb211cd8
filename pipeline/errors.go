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

package pipeline

import "errors"

var (
	// ErrExtractorRequired is returned when a nil extractor is provided.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrScorerRequired is returned when a nil scorer is provided.
	ErrScorerRequired = errors.New("scorer is required")

	// ErrNoInputDocuments is returned when a run is started with no documents.
	ErrNoInputDocuments = errors.New("no input documents")

	// ErrNoSections is returned when no sections could be extracted from
	// any of the input documents.
	ErrNoSections = errors.New("no sections extracted from input documents")
)
