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


// Package layout turns raw page layout and font metadata into section
// boundaries and titles.
//
// The package has two tiers. The primary tier analyzes per-page font usage
// (CollectFontStats, IdentifyHeadingFonts) to find which font signatures
// mark headings, then picks the most title-like heading line per page. When
// font metadata is absent or the primary tier fails for a document, the
// Extractor falls back to a basic positional heuristic: blocks sorted by
// vertical-then-horizontal position and a short-first-line title test.
//
// Every page yields exactly one Section; a page with no usable text still
// produces a Section titled "Page {n}".
package layout
