// Package gsw defines the data model of the global semantic workspace, a
// persistent knowledge graph accumulated from legal documents one at a time.
package gsw

// EntityKind discriminates between the two entity variants in the graph.
type EntityKind string

const (
	EntityKindPerson EntityKind = "person"
	EntityKindObject EntityKind = "object"
)

// Entity is a person or object tracked across documents. An entity keeps its
// ID for the lifetime of the workspace; merging never reassigns it.
type Entity struct {
	ID            string     `json:"id"`
	Kind          EntityKind `json:"kind"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Aliases       []string   `json:"aliases,omitempty"`
	InvolvedCases []string   `json:"involved_cases,omitempty"`

	// Person fields.
	DateOfBirth *string  `json:"dob,omitempty"`
	Roles       []string `json:"roles,omitempty"`

	// Object field, e.g. "Matrimonial Home" or "Bank Account".
	Type string `json:"type,omitempty"`
}

// TextRepresentation returns the string embedded for similarity search.
func (e *Entity) TextRepresentation() string {
	return e.Name + " " + e.Description
}

// Event is a dated occurrence on the shared timeline. Events are never
// deduplicated; two documents describing the same hearing yield two events.
type Event struct {
	ID                string   `json:"id"`
	Date              string   `json:"date,omitempty"`
	Type              string   `json:"type"`
	Description       string   `json:"description"`
	ParticipantIDs    []string `json:"participant_ids,omitempty"`
	ObjectIDs         []string `json:"object_ids,omitempty"`
	TriggeredStateIDs []string `json:"triggered_state_ids,omitempty"`
}

// State is a time-bounded fact about one entity, such as an employment or a
// marital status. A state with IsOngoing set or a nil EndDate is open.
type State struct {
	ID        string  `json:"id"`
	EntityID  string  `json:"entity_id"`
	Name      string  `json:"name"`
	Value     string  `json:"value"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsOngoing bool    `json:"is_ongoing"`
}

// Open reports whether the state has no recorded end.
func (s *State) Open() bool {
	return s.IsOngoing || s.EndDate == nil
}

// Outcome records a legal result such as an order or a dismissal. Outcomes
// are append only and carry whatever type label the document used.
type Outcome struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	Orders           []string `json:"orders,omitempty"`
	GrantedToIDs     []string `json:"granted_to_ids,omitempty"`
	RelatedObjectIDs []string `json:"related_object_ids,omitempty"`
}
