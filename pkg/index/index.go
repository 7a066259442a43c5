// Package index provides the similarity index the reconciler consults when
// linking freshly extracted entities against the global graph.
package index

import (
	"context"
)

// Embedder produces embedding vectors for text. The AI clients satisfy this.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error)
}

// EntityIndex maps entity IDs to embedded text representations and answers
// nearest-neighbor queries during entity linking.
//
// FindBestMatch returns the single closest entity whose cosine similarity is
// strictly above the threshold, or ok=false when nothing qualifies.
type EntityIndex interface {
	Upsert(ctx context.Context, entityID string, text string) error
	FindBestMatch(ctx context.Context, text string, threshold float64) (entityID string, ok bool, err error)
}
