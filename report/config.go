package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/poiesic/docsift/core"
)

// QueryConfig is the persona/job/documents configuration read at startup.
type QueryConfig struct {
	Persona     PersonaConfig `json:"persona"`
	JobToBeDone JobConfig     `json:"job_to_be_done"`
	Documents   []DocumentRef `json:"documents"`
}

// PersonaConfig identifies the persona role the ranking serves.
type PersonaConfig struct {
	Role string `json:"role"`
}

// JobConfig describes the task the persona needs done.
type JobConfig struct {
	Task string `json:"task"`
}

// DocumentRef names one input document by filename.
type DocumentRef struct {
	Filename string `json:"filename"`
}

// Query builds the persona query the scorer ranks against.
func (c *QueryConfig) Query() core.PersonaQuery {
	return core.PersonaQuery{
		Role: c.Persona.Role,
		Task: c.JobToBeDone.Task,
	}
}

// Filenames returns the configured document filenames in order.
func (c *QueryConfig) Filenames() []string {
	names := make([]string, len(c.Documents))
	for i, doc := range c.Documents {
		names[i] = doc.Filename
	}
	return names
}

// Validate checks the configuration for required fields.
func (c *QueryConfig) Validate() error {
	if c.Persona.Role == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingRole)
	}
	if c.JobToBeDone.Task == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingTask)
	}
	if len(c.Documents) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoDocuments)
	}
	for _, doc := range c.Documents {
		if doc.Filename == "" {
			return fmt.Errorf("%w: document with empty filename", ErrInvalidConfig)
		}
	}
	return nil
}

// ReadQueryConfig loads and validates the query configuration at path.
func ReadQueryConfig(path string) (*QueryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var config QueryConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
