package badger

import (
	"fmt"

	"github.com/poiesic/docsift/core"
)

// Key prefixes for different data types
const (
	embeddingRecordPrefix = "embrec"
)

// makeEmbeddingKey generates a key for an embedding record by ID.
func makeEmbeddingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", embeddingRecordPrefix, id))
}
