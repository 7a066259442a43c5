package index

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// MemoryIndex is an in-process EntityIndex backed by a linear scan over
// normalized vectors. It is the default when no database is configured and
// is rebuilt from the graph on startup.
type MemoryIndex struct {
	embedder Embedder

	mu      sync.RWMutex
	ids     []string
	vectors map[string][]float32
}

// MemoryIndexParams contains configuration for creating a MemoryIndex.
type MemoryIndexParams struct {
	Embedder Embedder
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex(params MemoryIndexParams) *MemoryIndex {
	return &MemoryIndex{
		embedder: params.Embedder,
		vectors:  make(map[string][]float32),
	}
}

// Upsert embeds text and stores the normalized vector under entityID,
// replacing any previous vector for that entity.
func (m *MemoryIndex) Upsert(ctx context.Context, entityID string, text string) error {
	embedding, err := m.embedder.GenerateEmbedding(ctx, []byte(text))
	if err != nil {
		return fmt.Errorf("failed to embed entity text: %w", err)
	}
	vector, err := normalize(embedding)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.vectors[entityID]; !exists {
		m.ids = append(m.ids, entityID)
	}
	m.vectors[entityID] = vector
	return nil
}

// FindBestMatch embeds text and scans for the closest stored entity. Only a
// similarity strictly above threshold counts as a match.
func (m *MemoryIndex) FindBestMatch(ctx context.Context, text string, threshold float64) (string, bool, error) {
	embedding, err := m.embedder.GenerateEmbedding(ctx, []byte(text))
	if err != nil {
		return "", false, fmt.Errorf("failed to embed query text: %w", err)
	}
	query, err := normalize(embedding)
	if err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	bestID := ""
	bestScore := math.Inf(-1)
	for _, id := range m.ids {
		score := dot(query, m.vectors[id])
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}

	if bestID == "" || bestScore <= threshold {
		return "", false, nil
	}
	return bestID, true, nil
}

// Len returns the number of indexed entities.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}

func normalize(v []float32) ([]float32, error) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return nil, fmt.Errorf("cannot index zero-magnitude embedding")
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out, nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
