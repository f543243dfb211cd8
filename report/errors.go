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


package report

import "errors"

var (
	// ErrInvalidConfig indicates the query configuration failed validation.
	// This is fatal: no extraction or ranking work starts on a bad config.
	ErrInvalidConfig = errors.New("invalid query configuration")

	// ErrMissingRole indicates the persona role field is missing or empty.
	ErrMissingRole = errors.New("persona role is required")

	// ErrMissingTask indicates the job task field is missing or empty.
	ErrMissingTask = errors.New("job task is required")

	// ErrNoDocuments indicates the configuration lists no documents.
	ErrNoDocuments = errors.New("at least one document is required")
)
