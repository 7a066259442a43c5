package workspace

import (
	"context"
	"fmt"
	"sync"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/index"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
	"github.com/Verridian-ai/legal-gsw/pkg/reconcile"
)

// Manager is the single writer of the global graph. It serializes Apply
// calls, persists a snapshot after every successful merge, and hands out
// deep copies for reading so callers never observe a half-merged graph.
type Manager struct {
	mu         sync.Mutex
	store      Store
	index      index.EntityIndex
	reconciler *reconcile.Reconciler
	graph      *gsw.GlobalGraph
}

// ManagerParams contains configuration for creating a Manager.
type ManagerParams struct {
	Store Store
	// Index is the similarity index entities are linked against. May be nil,
	// in which case linking falls back to the rule-based matcher only.
	Index      index.EntityIndex
	Reconciler *reconcile.Reconciler
}

// NewManager creates a Manager. Call Load before Apply.
func NewManager(params ManagerParams) *Manager {
	return &Manager{
		store:      params.Store,
		index:      params.Index,
		reconciler: params.Reconciler,
	}
}

// Load reads the persisted snapshot and rebuilds the similarity index from
// the entities it contains.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	graph, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	m.graph = graph

	if m.index != nil {
		for _, entity := range graph.Entities {
			if err := m.index.Upsert(ctx, entity.ID, entity.TextRepresentation()); err != nil {
				logger.Warn("[Workspace] Failed to index entity on load",
					"entity", entity.ID, "error", err)
			}
		}
	}

	logger.Info("[Workspace] Loaded",
		"entities", len(graph.Entities),
		"events", len(graph.Timeline),
		"states", len(graph.States),
		"documents", len(graph.DocumentIDs),
	)
	return nil
}

// Apply merges one document's local graph into the workspace and persists
// the result. The returned log records every linking and merge decision,
// with its final phase marking successful persistence.
func (m *Manager) Apply(ctx context.Context, local *gsw.LocalGraph, documentID string) (*reconcile.Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.graph == nil {
		return nil, fmt.Errorf("workspace not loaded")
	}

	lg, err := m.reconciler.Reconcile(ctx, m.graph, local, documentID)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, m.graph); err != nil {
		return lg, fmt.Errorf("failed to persist workspace: %w", err)
	}
	lg.MarkPersisted()
	return lg, nil
}

// Snapshot returns a deep copy of the current graph.
func (m *Manager) Snapshot() *gsw.GlobalGraph {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.graph == nil {
		return gsw.NewGlobalGraph()
	}
	return m.graph.Clone()
}

// Vocabulary derives the active label vocabulary from the current graph.
func (m *Manager) Vocabulary() *gsw.Vocabulary {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.graph == nil {
		return gsw.BuildVocabulary(gsw.NewGlobalGraph())
	}
	return gsw.BuildVocabulary(m.graph)
}

// ContextHint renders the active vocabulary as a prompt fragment for the
// extractor.
func (m *Manager) ContextHint() string {
	return m.Vocabulary().ContextHint()
}
