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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidSection indicates a Section failed validation.
	ErrInvalidSection = errors.New("invalid section")

	// ErrInvalidQuery indicates a PersonaQuery failed validation.
	ErrInvalidQuery = errors.New("invalid persona query")

	// ErrEmptyDocument indicates the Document field is empty.
	ErrEmptyDocument = errors.New("document name cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("section title cannot be empty")

	// ErrInvalidPageNumber indicates a page number below 1.
	ErrInvalidPageNumber = errors.New("page number must be at least 1")

	// ErrEmptyRole indicates the persona role is empty.
	ErrEmptyRole = errors.New("persona role cannot be empty")

	// ErrEmptyTask indicates the task description is empty.
	ErrEmptyTask = errors.New("task description cannot be empty")
)
