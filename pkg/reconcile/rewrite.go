package reconcile

import (
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

// rewriteReferences replaces local entity identifiers with their canonical
// counterparts everywhere the local graph mentions them, then flags any
// entity reference that still does not resolve against the global graph.
// Unresolved references are kept as-is; dropping them would lose information.
func rewriteReferences(global *gsw.GlobalGraph, local *gsw.LocalGraph, idMap map[string]string, lg *Log) {
	rewrite := func(id string) string {
		if canonical, ok := idMap[id]; ok {
			return canonical
		}
		return id
	}

	for _, state := range local.States {
		state.EntityID = rewrite(state.EntityID)
		if state.EntityID != "" && global.EntityByID(state.EntityID) == nil {
			lg.record(Entry{
				Action:  ActionUnresolvedReference,
				LocalID: state.EntityID,
				Field:   "state.entity_id",
				Name:    state.Name,
			})
		}
	}

	for _, event := range local.Timeline {
		for i, id := range event.ParticipantIDs {
			event.ParticipantIDs[i] = rewrite(id)
			if global.EntityByID(event.ParticipantIDs[i]) == nil {
				lg.record(Entry{
					Action:  ActionUnresolvedReference,
					LocalID: event.ParticipantIDs[i],
					Field:   "event.participant_ids",
					Name:    event.Type,
				})
			}
		}
		for i, id := range event.ObjectIDs {
			event.ObjectIDs[i] = rewrite(id)
			if global.EntityByID(event.ObjectIDs[i]) == nil {
				lg.record(Entry{
					Action:  ActionUnresolvedReference,
					LocalID: event.ObjectIDs[i],
					Field:   "event.object_ids",
					Name:    event.Type,
				})
			}
		}
	}

	for _, outcome := range local.Outcomes {
		for i, id := range outcome.GrantedToIDs {
			outcome.GrantedToIDs[i] = rewrite(id)
			if global.EntityByID(outcome.GrantedToIDs[i]) == nil {
				lg.record(Entry{
					Action:  ActionUnresolvedReference,
					LocalID: outcome.GrantedToIDs[i],
					Field:   "outcome.granted_to_ids",
					Name:    outcome.Type,
				})
			}
		}
		for i, id := range outcome.RelatedObjectIDs {
			outcome.RelatedObjectIDs[i] = rewrite(id)
			if global.EntityByID(outcome.RelatedObjectIDs[i]) == nil {
				lg.record(Entry{
					Action:  ActionUnresolvedReference,
					LocalID: outcome.RelatedObjectIDs[i],
					Field:   "outcome.related_object_ids",
					Name:    outcome.Type,
				})
			}
		}
	}
}
