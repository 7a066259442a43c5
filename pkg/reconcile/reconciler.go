// Package reconcile merges per-document local graphs into the global
// semantic workspace: entity linking against a similarity index with a
// rule-based fallback, canonical reference rewriting, and temporally
// consistent state-interval merging.
package reconcile

import (
	"context"
	"fmt"

	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/index"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
)

// DefaultSimilarityThreshold gates embedding matches during entity linking.
const DefaultSimilarityThreshold = 0.92

// Reconciler merges local graphs into the global graph. It assumes a single
// writer: at most one Reconcile call mutates a given global graph at a time.
type Reconciler struct {
	index     index.EntityIndex
	threshold float64
}

// ReconcilerParams contains configuration for creating a Reconciler.
type ReconcilerParams struct {
	// Index is the similarity index for entity linking. May be nil, in
	// which case only the rule-based matcher runs.
	Index index.EntityIndex
	// SimilarityThreshold defaults to DefaultSimilarityThreshold when zero.
	SimilarityThreshold float64
}

// NewReconciler creates a Reconciler.
func NewReconciler(params ReconcilerParams) *Reconciler {
	threshold := params.SimilarityThreshold
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Reconciler{
		index:     params.Index,
		threshold: threshold,
	}
}

// Reconcile merges one document's local graph into the global graph and
// returns the audit log of every decision taken. The global graph is mutated
// in place. Phases run in a fixed order; none may be skipped. Individual
// lookup or date failures degrade per record, they never abort the document.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	global *gsw.GlobalGraph,
	local *gsw.LocalGraph,
	documentID string,
) (*Log, error) {
	if global == nil || local == nil {
		return nil, fmt.Errorf("reconcile requires both a global and a local graph")
	}

	lg := NewLog(documentID)
	logger.Info("[Reconciler] Merging document",
		"document", documentID,
		"entities", len(local.Entities),
		"events", len(local.Timeline),
		"states", len(local.States),
	)

	idMap, err := r.linkEntities(ctx, global, local, documentID, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to link entities: %w", err)
	}
	lg.advance(PhaseEntitiesLinked)

	rewriteReferences(global, local, idMap, lg)
	lg.advance(PhaseReferencesRewritten)

	if err := r.mergeStates(global, local, lg); err != nil {
		return nil, fmt.Errorf("failed to merge states: %w", err)
	}
	lg.advance(PhaseStatesMerged)

	if err := mergeTimeline(global, local); err != nil {
		return nil, fmt.Errorf("failed to merge timeline: %w", err)
	}
	lg.advance(PhaseEventsMerged)

	if err := mergeOutcomes(global, local); err != nil {
		return nil, fmt.Errorf("failed to merge outcomes: %w", err)
	}
	lg.advance(PhaseOutcomesMerged)

	if documentID != "" {
		global.DocumentIDs = append(global.DocumentIDs, documentID)
	}

	logger.Info("[Reconciler] Document merged",
		"document", documentID,
		"merged", lg.CountAction(ActionMerged),
		"added_new", lg.CountAction(ActionAddedNew),
		"closed_states", lg.CountAction(ActionClosedState),
		"unresolved", lg.CountAction(ActionUnresolvedReference),
	)
	return lg, nil
}

// mergeTimeline appends all events and re-sorts chronologically. Events are
// never deduplicated; two documents describing the same hearing yield two
// records.
func mergeTimeline(global *gsw.GlobalGraph, local *gsw.LocalGraph) error {
	for _, event := range local.Timeline {
		if event.ID == "" {
			id, err := util.NewID()
			if err != nil {
				return fmt.Errorf("failed to assign event id: %w", err)
			}
			event.ID = id
		}
		global.Timeline = append(global.Timeline, event)
	}
	global.SortTimeline()
	return nil
}

func mergeOutcomes(global *gsw.GlobalGraph, local *gsw.LocalGraph) error {
	for _, outcome := range local.Outcomes {
		if outcome.ID == "" {
			id, err := util.NewID()
			if err != nil {
				return fmt.Errorf("failed to assign outcome id: %w", err)
			}
			outcome.ID = id
		}
		global.Outcomes = append(global.Outcomes, outcome)
	}
	return nil
}
