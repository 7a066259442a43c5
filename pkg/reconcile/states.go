package reconcile

import (
	"fmt"

	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
)

// mergeStates integrates new state intervals while preserving the invariant
// that each (entity_id, name) pair has at most one open state. A later-dated
// arrival closes the open interval at its own start date. States are only
// ever appended and closed, never removed, so full history survives.
func (r *Reconciler) mergeStates(global *gsw.GlobalGraph, local *gsw.LocalGraph, lg *Log) error {
	for _, state := range local.States {
		open := global.OpenState(state.EntityID, state.Name)

		if open != nil && state.StartDate != nil && open.StartDate != nil &&
			util.DateAfter(*state.StartDate, *open.StartDate) {
			closedAt := *state.StartDate
			open.EndDate = &closedAt
			open.IsOngoing = false
			lg.record(Entry{
				Action:   ActionClosedState,
				StateID:  open.ID,
				Name:     open.Name,
				ClosedAt: closedAt,
				Reason:   fmt.Sprintf("superseded by %s starting %s", state.Value, closedAt),
			})
			logger.Debug("[Reconciler] Closed state", "entity", open.EntityID, "name", open.Name, "closed_at", closedAt)
		}

		if state.ID == "" {
			id, err := util.NewID()
			if err != nil {
				return fmt.Errorf("failed to assign state id: %w", err)
			}
			state.ID = id
		}
		global.States = append(global.States, state)
	}
	return nil
}
