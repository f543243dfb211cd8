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

import "fmt"

// ValidateSection validates a Section according to domain rules.
//
// Validation rules:
//   - Document must not be empty
//   - Page must be at least 1
//   - Title must not be empty
//
// NOT validated:
//   - Body (a page may have no body text)
//   - Score (zero until a ranking pass annotates the section)
func ValidateSection(section *Section) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidSection)
	}

	if section.Document == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptyDocument)
	}

	if section.Page < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrInvalidPageNumber)
	}

	if section.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptyTitle)
	}

	return nil
}

// ValidatePersonaQuery validates a PersonaQuery according to domain rules.
//
// Validation rules:
//   - Role must not be empty
//   - Task must not be empty
func ValidatePersonaQuery(query *PersonaQuery) error {
	if query == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	if query.Role == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyRole)
	}

	if query.Task == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyTask)
	}

	return nil
}
