package gsw

import (
	"sort"

	"github.com/Verridian-ai/legal-gsw/internal/util"
)

// LocalGraph is the extraction result for a single document. Its entity IDs
// are provisional until the reconciler links them against the global graph.
type LocalGraph struct {
	CaseID   string     `json:"case_id"`
	Title    string     `json:"title,omitempty"`
	Entities []*Entity  `json:"entities"`
	Timeline []*Event   `json:"timeline"`
	States   []*State   `json:"states"`
	Outcomes []*Outcome `json:"outcomes"`
}

// GlobalGraph is the accumulated workspace. A single writer mutates it; the
// query surface only ever sees snapshots.
type GlobalGraph struct {
	Entities []*Entity  `json:"entities"`
	Timeline []*Event   `json:"timeline"`
	States   []*State   `json:"states"`
	Outcomes []*Outcome `json:"outcomes"`

	// DocumentIDs lists every document merged into the graph, in order.
	DocumentIDs []string `json:"document_ids,omitempty"`
}

// NewGlobalGraph returns an empty workspace graph.
func NewGlobalGraph() *GlobalGraph {
	return &GlobalGraph{
		Entities: []*Entity{},
		Timeline: []*Event{},
		States:   []*State{},
		Outcomes: []*Outcome{},
	}
}

// EntityByID returns the entity with the given ID, or nil.
func (g *GlobalGraph) EntityByID(id string) *Entity {
	for _, e := range g.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// StatesForEntity returns all states recorded for one entity.
func (g *GlobalGraph) StatesForEntity(entityID string) []*State {
	var out []*State
	for _, s := range g.States {
		if s.EntityID == entityID {
			out = append(out, s)
		}
	}
	return out
}

// OpenState returns the open state for (entityID, name), or nil. The merge
// logic maintains at most one open state per pair.
func (g *GlobalGraph) OpenState(entityID, name string) *State {
	for _, s := range g.States {
		if s.EntityID == entityID && s.Name == name && s.Open() {
			return s
		}
	}
	return nil
}

// SortTimeline orders events chronologically. Events without a parseable
// date keep their relative order and sort before dated ones.
func (g *GlobalGraph) SortTimeline() {
	sort.SliceStable(g.Timeline, func(i, j int) bool {
		return util.CompareDates(g.Timeline[i].Date, g.Timeline[j].Date) < 0
	})
}

// Clone returns a deep copy of the graph for handing out as a snapshot.
func (g *GlobalGraph) Clone() *GlobalGraph {
	clone := &GlobalGraph{
		Entities:    make([]*Entity, len(g.Entities)),
		Timeline:    make([]*Event, len(g.Timeline)),
		States:      make([]*State, len(g.States)),
		Outcomes:    make([]*Outcome, len(g.Outcomes)),
		DocumentIDs: append([]string(nil), g.DocumentIDs...),
	}
	for i, e := range g.Entities {
		c := *e
		c.Aliases = append([]string(nil), e.Aliases...)
		c.InvolvedCases = append([]string(nil), e.InvolvedCases...)
		c.Roles = append([]string(nil), e.Roles...)
		if e.DateOfBirth != nil {
			dob := *e.DateOfBirth
			c.DateOfBirth = &dob
		}
		clone.Entities[i] = &c
	}
	for i, ev := range g.Timeline {
		c := *ev
		c.ParticipantIDs = append([]string(nil), ev.ParticipantIDs...)
		c.ObjectIDs = append([]string(nil), ev.ObjectIDs...)
		c.TriggeredStateIDs = append([]string(nil), ev.TriggeredStateIDs...)
		clone.Timeline[i] = &c
	}
	for i, s := range g.States {
		c := *s
		if s.StartDate != nil {
			v := *s.StartDate
			c.StartDate = &v
		}
		if s.EndDate != nil {
			v := *s.EndDate
			c.EndDate = &v
		}
		clone.States[i] = &c
	}
	for i, o := range g.Outcomes {
		c := *o
		c.Orders = append([]string(nil), o.Orders...)
		c.GrantedToIDs = append([]string(nil), o.GrantedToIDs...)
		c.RelatedObjectIDs = append([]string(nil), o.RelatedObjectIDs...)
		clone.Outcomes[i] = &c
	}
	return clone
}
