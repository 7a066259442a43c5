package reconcile

import (
	"context"
	"fmt"

	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
)

// linkEntities decides, for every entity in the local graph, whether it is an
// already-known canonical entity or a new one. It mutates the global graph
// and returns the local-to-canonical identifier mapping for reference
// rewriting. Failures of the embedding index degrade to the rule-based
// matcher per entity instead of aborting the document.
func (r *Reconciler) linkEntities(
	ctx context.Context,
	global *gsw.GlobalGraph,
	local *gsw.LocalGraph,
	documentID string,
	lg *Log,
) (map[string]string, error) {
	idMap := make(map[string]string, len(local.Entities))

	for _, candidate := range local.Entities {
		localEntityID := candidate.ID
		canonical, reason := r.findCanonical(ctx, global, candidate)

		if canonical != nil {
			mergeEntity(canonical, candidate, documentID)
			if localEntityID != "" {
				idMap[localEntityID] = canonical.ID
			}
			candidate.ID = canonical.ID
			lg.record(Entry{
				Action:      ActionMerged,
				LocalID:     localEntityID,
				CanonicalID: canonical.ID,
				Name:        candidate.Name,
				Reason:      reason,
			})
			logger.Debug("[Reconciler] Linked entity", "name", candidate.Name, "canonical", canonical.ID, "reason", reason)

			// Keep the index current with the enriched text.
			r.upsertIndex(ctx, canonical)
			continue
		}

		if candidate.ID == "" {
			id, err := util.NewID()
			if err != nil {
				return nil, fmt.Errorf("failed to assign entity id: %w", err)
			}
			candidate.ID = id
		}
		if documentID != "" && !contains(candidate.InvolvedCases, documentID) {
			candidate.InvolvedCases = append(candidate.InvolvedCases, documentID)
		}
		global.Entities = append(global.Entities, candidate)
		idMap[candidate.ID] = candidate.ID
		lg.record(Entry{
			Action:      ActionAddedNew,
			LocalID:     localEntityID,
			CanonicalID: candidate.ID,
			Name:        candidate.Name,
			Reason:      "no canonical match",
		})
		logger.Debug("[Reconciler] Added new entity", "name", candidate.Name, "id", candidate.ID)

		r.upsertIndex(ctx, candidate)
	}

	return idMap, nil
}

// findCanonical runs the embedding lookup with a rule-based fallback and
// returns the canonical entity plus the signal that fired, or nil.
func (r *Reconciler) findCanonical(ctx context.Context, global *gsw.GlobalGraph, candidate *gsw.Entity) (*gsw.Entity, string) {
	if r.index != nil {
		matchID, ok, err := r.index.FindBestMatch(ctx, candidate.TextRepresentation(), r.threshold)
		if err == nil {
			if !ok {
				return nil, ""
			}
			if canonical := global.EntityByID(matchID); canonical != nil {
				return canonical, fmt.Sprintf("embedding similarity above %.2f", r.threshold)
			}
			logger.Warn("[Reconciler] Index returned unknown entity id", "id", matchID)
			return nil, ""
		}
		logger.Warn("[Reconciler] Embedding lookup failed, falling back to rules", "entity", candidate.Name, "error", err)
	}

	if canonical, reason, ok := ruleBasedMatch(candidate, global.Entities); ok {
		return canonical, reason
	}
	return nil, ""
}

func (r *Reconciler) upsertIndex(ctx context.Context, entity *gsw.Entity) {
	if r.index == nil {
		return
	}
	if err := r.index.Upsert(ctx, entity.ID, entity.TextRepresentation()); err != nil {
		logger.Warn("[Reconciler] Failed to index entity", "id", entity.ID, "error", err)
	}
}

// mergeEntity folds a candidate into its canonical entity. Enrichment is
// monotonic: information is added or replaced by strictly longer text, never
// dropped.
func mergeEntity(canonical, candidate *gsw.Entity, documentID string) {
	if len(candidate.Description) > len(canonical.Description) {
		canonical.Description = candidate.Description
	}

	if candidate.Name != canonical.Name && !contains(canonical.Aliases, candidate.Name) {
		canonical.Aliases = append(canonical.Aliases, candidate.Name)
	}
	for _, alias := range candidate.Aliases {
		if alias != canonical.Name && !contains(canonical.Aliases, alias) {
			canonical.Aliases = append(canonical.Aliases, alias)
		}
	}

	for _, role := range candidate.Roles {
		if !contains(canonical.Roles, role) {
			canonical.Roles = append(canonical.Roles, role)
		}
	}

	if canonical.DateOfBirth == nil && candidate.DateOfBirth != nil {
		dob := *candidate.DateOfBirth
		canonical.DateOfBirth = &dob
	}
	if canonical.Type == "" && candidate.Type != "" {
		canonical.Type = candidate.Type
	}

	if documentID != "" && !contains(canonical.InvolvedCases, documentID) {
		canonical.InvolvedCases = append(canonical.InvolvedCases, documentID)
	}
}
