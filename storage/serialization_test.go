package storage

import (
	"testing"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalEmbeddingRecord(t *testing.T) {
	record := &core.EmbeddingRecord{
		Model:     "embeddinggemma",
		Vector:    []float32{0.25, -0.5, 0.75},
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	data := MarshalEmbeddingRecord(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalEmbeddingRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record.Model, decoded.Model)
	assert.Equal(t, record.Vector, decoded.Vector)
	assert.True(t, record.CreatedAt.Equal(decoded.CreatedAt),
		"timestamps should round-trip: %v vs %v", record.CreatedAt, decoded.CreatedAt)
}

func TestUnmarshalEmbeddingRecord_Invalid(t *testing.T) {
	_, err := UnmarshalEmbeddingRecord([]byte{})
	assert.Error(t, err)
}
