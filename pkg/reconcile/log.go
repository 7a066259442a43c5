package reconcile

// Action identifies a single reconciliation decision.
type Action string

const (
	ActionMerged              Action = "merged"
	ActionAddedNew            Action = "added_new"
	ActionClosedState         Action = "closed_state"
	ActionUnresolvedReference Action = "unresolved_reference"
)

// Phase names the steps a document passes through during reconciliation.
type Phase string

const (
	PhaseReceived            Phase = "RECEIVED"
	PhaseEntitiesLinked      Phase = "ENTITIES_LINKED"
	PhaseReferencesRewritten Phase = "REFERENCES_REWRITTEN"
	PhaseStatesMerged        Phase = "STATES_MERGED"
	PhaseEventsMerged        Phase = "EVENTS_MERGED"
	PhaseOutcomesMerged      Phase = "OUTCOMES_MERGED"
	PhasePersisted           Phase = "PERSISTED"
)

// Entry is one decision in the reconciliation log.
type Entry struct {
	Action      Action `json:"action"`
	LocalID     string `json:"local_id,omitempty"`
	CanonicalID string `json:"canonical_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Reason      string `json:"reason,omitempty"`

	// Set for closed_state entries.
	StateID  string `json:"state_id,omitempty"`
	ClosedAt string `json:"closed_at,omitempty"`

	// Set for unresolved_reference entries.
	Field string `json:"field,omitempty"`
}

// Log is the audit trail produced by one call to Reconcile. It records every
// merge, create, close, and unresolved reference, plus the phase transitions
// the document went through.
type Log struct {
	DocumentID string  `json:"document_id"`
	Phases     []Phase `json:"phases"`
	Entries    []Entry `json:"entries"`
}

// NewLog starts a log for one document in the RECEIVED phase.
func NewLog(documentID string) *Log {
	return &Log{
		DocumentID: documentID,
		Phases:     []Phase{PhaseReceived},
	}
}

func (l *Log) advance(p Phase) {
	l.Phases = append(l.Phases, p)
}

func (l *Log) record(e Entry) {
	l.Entries = append(l.Entries, e)
}

// MarkPersisted records the final phase transition. The persistence side
// effect itself happens outside the reconciler.
func (l *Log) MarkPersisted() {
	l.advance(PhasePersisted)
}

// CountAction returns how many entries carry the given action.
func (l *Log) CountAction(a Action) int {
	n := 0
	for _, e := range l.Entries {
		if e.Action == a {
			n++
		}
	}
	return n
}
