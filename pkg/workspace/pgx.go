package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXStore persists the global graph as a jsonb snapshot in PostgreSQL.
// A single-row table keeps exactly one current snapshot; history lives in
// the reconciliation logs, not here.
type PGXStore struct {
	pool *pgxpool.Pool
}

// PGXStoreParams contains configuration for creating a PGXStore.
type PGXStoreParams struct {
	Pool *pgxpool.Pool
}

// NewPGXStore creates a PGXStore using an existing connection pool.
func NewPGXStore(params PGXStoreParams) *PGXStore {
	return &PGXStore{pool: params.Pool}
}

func (s *PGXStore) Save(ctx context.Context, graph *gsw.GlobalGraph) error {
	data, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("failed to marshal workspace snapshot: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO workspace_snapshots (id, graph, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
		SET graph = EXCLUDED.graph, updated_at = now()
	`, data)
	if err != nil {
		return fmt.Errorf("failed to save workspace snapshot: %w", err)
	}
	return nil
}

func (s *PGXStore) Load(ctx context.Context) (*gsw.GlobalGraph, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `
		SELECT graph FROM workspace_snapshots WHERE id = 1
	`).Scan(&data)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			logger.Info("[Workspace] No snapshot found, starting fresh")
			return gsw.NewGlobalGraph(), nil
		}
		return nil, fmt.Errorf("failed to load workspace snapshot: %w", err)
	}

	graph := gsw.NewGlobalGraph()
	if err := json.Unmarshal(data, graph); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace snapshot: %w", err)
	}
	return graph, nil
}
