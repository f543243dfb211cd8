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


package layout

import "errors"

var (
	// ErrDocumentUnreadable indicates the layout source could not open or
	// parse a document at all. The caller skips the document and continues
	// with the rest of the batch.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrNoLayoutMetadata indicates a document's runs carry no font
	// information, so font analysis cannot run and the basic extractor
	// must be used instead.
	ErrNoLayoutMetadata = errors.New("no layout metadata")

	// ErrSourceRequired is returned when a layout source is not provided.
	ErrSourceRequired = errors.New("layout source required")
)
