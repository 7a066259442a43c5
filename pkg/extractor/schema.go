package extractor

import (
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

// Wire types for schema-constrained extraction. They mirror the graph model
// but keep persons and objects separate, which measurably improves recall on
// referring expressions like "the husband".

type casePayload struct {
	CaseID   string           `json:"case_id"`
	Title    string           `json:"title"`
	Persons  []personPayload  `json:"persons" validate:"dive"`
	Objects  []objectPayload  `json:"objects" validate:"dive"`
	Timeline []eventPayload   `json:"timeline" validate:"dive"`
	States   []statePayload   `json:"states" validate:"dive"`
	Outcomes []outcomePayload `json:"outcomes" validate:"dive"`
}

type personPayload struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
	Roles       []string `json:"roles"`
	DOB         string   `json:"dob"`
}

type objectPayload struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
}

type eventPayload struct {
	ID             string   `json:"id" validate:"required"`
	Date           string   `json:"date"`
	Type           string   `json:"type" validate:"required"`
	Description    string   `json:"description"`
	ParticipantIDs []string `json:"participant_ids"`
	ObjectIDs      []string `json:"object_ids"`
}

type statePayload struct {
	ID        string `json:"id" validate:"required"`
	EntityID  string `json:"entity_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Value     string `json:"value" validate:"required"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsOngoing bool   `json:"is_ongoing"`
}

type outcomePayload struct {
	ID               string   `json:"id" validate:"required"`
	Type             string   `json:"type" validate:"required"`
	Description      string   `json:"description"`
	Orders           []string `json:"orders"`
	GrantedToIDs     []string `json:"granted_to_ids"`
	RelatedObjectIDs []string `json:"related_object_ids"`
}

func (p *casePayload) toLocalGraph(documentID string) *gsw.LocalGraph {
	local := &gsw.LocalGraph{
		CaseID: documentID,
		Title:  p.Title,
	}

	for _, person := range p.Persons {
		entity := &gsw.Entity{
			ID:          person.ID,
			Kind:        gsw.EntityKindPerson,
			Name:        person.Name,
			Description: person.Description,
			Aliases:     person.Aliases,
			Roles:       person.Roles,
		}
		if person.DOB != "" {
			dob := person.DOB
			entity.DateOfBirth = &dob
		}
		local.Entities = append(local.Entities, entity)
	}

	for _, object := range p.Objects {
		local.Entities = append(local.Entities, &gsw.Entity{
			ID:          object.ID,
			Kind:        gsw.EntityKindObject,
			Name:        object.Name,
			Type:        object.Type,
			Description: object.Description,
			Aliases:     object.Aliases,
		})
	}

	for _, event := range p.Timeline {
		local.Timeline = append(local.Timeline, &gsw.Event{
			ID:             event.ID,
			Date:           event.Date,
			Type:           event.Type,
			Description:    event.Description,
			ParticipantIDs: event.ParticipantIDs,
			ObjectIDs:      event.ObjectIDs,
		})
	}

	for _, state := range p.States {
		s := &gsw.State{
			ID:        state.ID,
			EntityID:  state.EntityID,
			Name:      state.Name,
			Value:     state.Value,
			IsOngoing: state.IsOngoing,
		}
		if state.StartDate != "" {
			start := state.StartDate
			s.StartDate = &start
		}
		if state.EndDate != "" {
			end := state.EndDate
			s.EndDate = &end
		}
		local.States = append(local.States, s)
	}

	for _, outcome := range p.Outcomes {
		local.Outcomes = append(local.Outcomes, &gsw.Outcome{
			ID:               outcome.ID,
			Type:             outcome.Type,
			Description:      outcome.Description,
			Orders:           outcome.Orders,
			GrantedToIDs:     outcome.GrantedToIDs,
			RelatedObjectIDs: outcome.RelatedObjectIDs,
		})
	}

	return local
}
