package reconcile

import (
	"fmt"
	"strings"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

type roleMapping struct {
	term  string
	roles []string
}

// roleMappings connects generic referring expressions used by legal documents
// to the role labels a canonical person may carry. Order matters: the first
// mapping that fires wins.
var roleMappings = []roleMapping{
	{"the husband", []string{"husband", "applicant husband", "respondent husband"}},
	{"the wife", []string{"wife", "applicant wife", "respondent wife"}},
	{"the applicant", []string{"applicant"}},
	{"the respondent", []string{"respondent"}},
	{"the child", []string{"child", "subject child"}},
}

// ruleBasedMatch finds the canonical entity a candidate refers to using pure
// string and role signals. It is the fallback when no embedding index is
// available and matches each candidate to at most one canonical entity.
// Returns the match and the signal that fired.
func ruleBasedMatch(candidate *gsw.Entity, entities []*gsw.Entity) (*gsw.Entity, string, bool) {
	candidateName := strings.ToLower(strings.TrimSpace(candidate.Name))
	candidateAliases := lowerAll(candidate.Aliases)

	for _, existing := range entities {
		existingName := strings.ToLower(strings.TrimSpace(existing.Name))
		existingAliases := lowerAll(existing.Aliases)

		if candidateName == existingName {
			return existing, fmt.Sprintf("exact name match: %s", candidate.Name), true
		}
		if contains(existingAliases, candidateName) {
			return existing, fmt.Sprintf("name matches alias: %s", candidate.Name), true
		}
		if contains(candidateAliases, existingName) {
			return existing, fmt.Sprintf("alias matches name: %s", existing.Name), true
		}
		if common, ok := firstCommon(candidateAliases, existingAliases); ok {
			return existing, fmt.Sprintf("common alias: %s", common), true
		}

		for _, mapping := range roleMappings {
			if candidateName != mapping.term && !contains(candidateAliases, mapping.term) {
				continue
			}
			existingRoles := lowerAll(existing.Roles)
			for _, role := range mapping.roles {
				if contains(existingRoles, role) {
					return existing, fmt.Sprintf("role-based match: %s -> %s", mapping.term, existing.Name), true
				}
			}
		}
	}

	return nil, "", false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func firstCommon(a, b []string) (string, bool) {
	for _, v := range a {
		if v != "" && contains(b, v) {
			return v, true
		}
	}
	return "", false
}
