package reconcile

import (
	"testing"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

func TestRuleBasedMatch(t *testing.T) {
	entities := []*gsw.Entity{
		{ID: "p1", Kind: gsw.EntityKindPerson, Name: "John Smith", Aliases: []string{"Mr Smith"}, Roles: []string{"Husband", "Respondent"}},
		{ID: "p2", Kind: gsw.EntityKindPerson, Name: "Jane Smith", Aliases: []string{"the wife"}, Roles: []string{"Applicant", "Wife"}},
	}

	tests := []struct {
		name      string
		candidate *gsw.Entity
		wantID    string
		wantMatch bool
	}{
		{
			name:      "ExactNameMatch",
			candidate: &gsw.Entity{Name: "john smith"},
			wantID:    "p1",
			wantMatch: true,
		},
		{
			name:      "NameMatchesAlias",
			candidate: &gsw.Entity{Name: "Mr Smith"},
			wantID:    "p1",
			wantMatch: true,
		},
		{
			name:      "AliasMatchesName",
			candidate: &gsw.Entity{Name: "J Smith", Aliases: []string{"Jane Smith"}},
			wantID:    "p2",
			wantMatch: true,
		},
		{
			name:      "CommonAlias",
			candidate: &gsw.Entity{Name: "the applicant wife", Aliases: []string{"the wife"}},
			wantID:    "p2",
			wantMatch: true,
		},
		{
			name:      "RoleBasedHusband",
			candidate: &gsw.Entity{Name: "the husband"},
			wantID:    "p1",
			wantMatch: true,
		},
		{
			name:      "RoleBasedViaAlias",
			candidate: &gsw.Entity{Name: "unnamed party", Aliases: []string{"the respondent"}},
			wantID:    "p1",
			wantMatch: true,
		},
		{
			name:      "NoMatch",
			candidate: &gsw.Entity{Name: "Dr Nguyen"},
			wantMatch: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			match, reason, ok := ruleBasedMatch(tc.candidate, entities)
			if ok != tc.wantMatch {
				t.Fatalf("match = %v, want %v (reason %q)", ok, tc.wantMatch, reason)
			}
			if ok && match.ID != tc.wantID {
				t.Fatalf("matched %s, want %s (reason %q)", match.ID, tc.wantID, reason)
			}
			if ok && reason == "" {
				t.Fatal("expected non-empty reason for a match")
			}
		})
	}
}

func TestRuleBasedMatch_AtMostOneTarget(t *testing.T) {
	entities := []*gsw.Entity{
		{ID: "p1", Name: "John Smith", Roles: []string{"Husband"}},
		{ID: "p2", Name: "John Smith Senior", Aliases: []string{"john smith"}, Roles: []string{"Husband"}},
	}

	match, _, ok := ruleBasedMatch(&gsw.Entity{Name: "John Smith"}, entities)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.ID != "p1" {
		t.Fatalf("expected first candidate p1, got %s", match.ID)
	}
}
