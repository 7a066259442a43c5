package gsw

import (
	"slices"
	"strings"
	"testing"
)

func TestBuildVocabulary_PromotesFrequentTerms(t *testing.T) {
	g := NewGlobalGraph()
	for i := 0; i < 4; i++ {
		g.Timeline = append(g.Timeline, &Event{ID: string(rune('a' + i)), Type: "Mediation Session"})
	}
	// Below the promotion threshold.
	for i := 0; i < 3; i++ {
		g.Timeline = append(g.Timeline, &Event{ID: string(rune('x' + i)), Type: "Rare Event"})
	}

	v := BuildVocabulary(g)

	if !slices.Contains(v.EventTypes, "Mediation Session") {
		t.Fatal("expected frequent term to be promoted into event types")
	}
	if slices.Contains(v.EventTypes, "Rare Event") {
		t.Fatal("expected infrequent term to stay out of event types")
	}
	if !slices.Contains(v.EventTypes, "Hearing") {
		t.Fatal("expected seed term to survive")
	}
}

func TestBuildVocabulary_SamplePeopleByCaseCount(t *testing.T) {
	g := NewGlobalGraph()
	g.Entities = []*Entity{
		{ID: "p1", Kind: EntityKindPerson, Name: "One Case", InvolvedCases: []string{"c1"}},
		{ID: "p2", Kind: EntityKindPerson, Name: "Three Cases", InvolvedCases: []string{"c1", "c2", "c3"}},
		{ID: "o1", Kind: EntityKindObject, Name: "Matrimonial Home", Type: "Dwelling"},
		{ID: "p3", Kind: EntityKindPerson, Name: "Two Cases", InvolvedCases: []string{"c1", "c2"}},
	}

	v := BuildVocabulary(g)

	want := []string{"Three Cases", "Two Cases", "One Case"}
	if !slices.Equal(v.SamplePeople, want) {
		t.Fatalf("expected %v, got %v", want, v.SamplePeople)
	}
}

func TestBuildVocabulary_SamplePeopleCapped(t *testing.T) {
	g := NewGlobalGraph()
	for i := 0; i < 15; i++ {
		g.Entities = append(g.Entities, &Entity{
			ID:   string(rune('a' + i)),
			Kind: EntityKindPerson,
			Name: "Person",
		})
	}

	v := BuildVocabulary(g)
	if len(v.SamplePeople) != maxSamplePeople {
		t.Fatalf("expected %d sample people, got %d", maxSamplePeople, len(v.SamplePeople))
	}
}

func TestContextHint_ContainsTermLists(t *testing.T) {
	g := NewGlobalGraph()
	g.Entities = []*Entity{
		{ID: "p1", Kind: EntityKindPerson, Name: "Jane Smith", InvolvedCases: []string{"c1"}},
	}

	hint := BuildVocabulary(g).ContextHint()

	for _, want := range []string{"assets[", "outcomes[", "events[", "people[1]: Jane Smith", "Hearing", "Divorce Order"} {
		if !strings.Contains(hint, want) {
			t.Fatalf("expected hint to contain %q, got:\n%s", want, hint)
		}
	}
}
