// Package workspace owns the global graph lifecycle: loading a persisted
// snapshot, applying per-document local graphs through the reconciler, and
// saving the result. All mutation goes through a single Manager so the graph
// only ever has one writer.
package workspace

import (
	"context"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

// Store persists global graph snapshots.
type Store interface {
	Save(ctx context.Context, graph *gsw.GlobalGraph) error
	// Load returns the persisted graph, or a fresh empty graph when no
	// snapshot exists yet.
	Load(ctx context.Context) (*gsw.GlobalGraph, error)
}
