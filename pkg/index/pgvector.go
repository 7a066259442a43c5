package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/Verridian-ai/legal-gsw/internal/util"
)

// PGVectorIndex is an EntityIndex backed by a pgvector column, for
// deployments where the graph outgrows a single process.
type PGVectorIndex struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// PGVectorIndexParams contains configuration for creating a PGVectorIndex.
type PGVectorIndexParams struct {
	Pool     *pgxpool.Pool
	Embedder Embedder
}

// NewPGVectorIndex creates an index over the entity_embeddings table.
func NewPGVectorIndex(params PGVectorIndexParams) *PGVectorIndex {
	return &PGVectorIndex{
		pool:     params.Pool,
		embedder: params.Embedder,
	}
}

// Upsert embeds text and writes the vector for entityID, replacing any
// previous row.
func (p *PGVectorIndex) Upsert(ctx context.Context, entityID string, text string) error {
	embedding, err := p.embedder.GenerateEmbedding(ctx, []byte(text))
	if err != nil {
		return fmt.Errorf("failed to embed entity text: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO entity_embeddings (entity_id, text_rep, embedding)
		VALUES ($1, $2, $3)
		ON CONFLICT (entity_id)
		DO UPDATE SET text_rep = EXCLUDED.text_rep, embedding = EXCLUDED.embedding
	`, entityID, util.SanitizePostgresText(text), pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("failed to upsert entity embedding: %w", err)
	}
	return nil
}

// FindBestMatch embeds text and runs a cosine nearest-neighbor query. Only a
// similarity strictly above threshold counts as a match.
func (p *PGVectorIndex) FindBestMatch(ctx context.Context, text string, threshold float64) (string, bool, error) {
	embedding, err := p.embedder.GenerateEmbedding(ctx, []byte(text))
	if err != nil {
		return "", false, fmt.Errorf("failed to embed query text: %w", err)
	}

	var entityID string
	var similarity float64
	err = p.pool.QueryRow(ctx, `
		SELECT entity_id, 1 - (embedding <=> $1) AS similarity
		FROM entity_embeddings
		ORDER BY embedding <=> $1
		LIMIT 1
	`, pgvector.NewVector(embedding)).Scan(&entityID, &similarity)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query entity embeddings: %w", err)
	}

	if similarity <= threshold {
		return "", false, nil
	}
	return entityID, true, nil
}
