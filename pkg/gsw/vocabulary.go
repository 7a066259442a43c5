package gsw

import (
	"fmt"
	"sort"
	"strings"
)

// Seed vocabularies for Australian family law documents. The extractor is
// nudged toward these labels; the graph may grow past them.
var (
	SeedAssetTypes = []string{
		"Visa", "Superannuation Fund", "Matrimonial Home", "Investment Property",
		"Motor Vehicle", "Bank Account", "Family Trust", "Shares",
		"Business", "Land", "Dwelling", "Office", "Debt", "Taxable Income",
	}

	SeedOutcomeTypes = []string{
		"Final Parenting Order", "Interim Property Order", "Divorce Order",
		"Spouse Maintenance", "Costs Order", "Dismissal",
		"Legislation", "Legislative Change", "Validation", "Ruling",
		"Legal Regulation", "Amendment", "Review Application",
	}

	SeedEventTypes = []string{
		"Hearing", "Decision", "Application", "Judgment", "Arrest",
		"Arrival", "Commencement", "Refusal", "Visa Application",
		"Court Decision", "Email", "Submission", "Act Enactment",
		"Appeal", "Establishment", "Royal Assent", "Separation", "Marriage",
	}
)

// promoteThreshold is how often a non-seed label must appear in the graph
// before it is suggested back to the extractor.
const promoteThreshold = 3

// maxSamplePeople caps how many person names the context hint lists.
const maxSamplePeople = 10

// Vocabulary is the active term set derived from the seed lists plus labels
// that recur in the graph.
type Vocabulary struct {
	AssetTypes   []string `json:"asset_types"`
	OutcomeTypes []string `json:"outcome_types"`
	EventTypes   []string `json:"event_types"`
	SamplePeople []string `json:"sample_people"`
}

// BuildVocabulary computes the active vocabulary from the current graph.
// Labels seen more than promoteThreshold times join the seed terms.
func BuildVocabulary(g *GlobalGraph) *Vocabulary {
	assetCounts := map[string]int{}
	for _, e := range g.Entities {
		if e.Kind == EntityKindObject && e.Type != "" {
			assetCounts[e.Type]++
		}
	}
	outcomeCounts := map[string]int{}
	for _, o := range g.Outcomes {
		if o.Type != "" {
			outcomeCounts[o.Type]++
		}
	}
	eventCounts := map[string]int{}
	for _, ev := range g.Timeline {
		if ev.Type != "" {
			eventCounts[ev.Type]++
		}
	}

	persons := []*Entity{}
	for _, e := range g.Entities {
		if e.Kind == EntityKindPerson {
			persons = append(persons, e)
		}
	}
	sort.SliceStable(persons, func(i, j int) bool {
		return len(persons[i].InvolvedCases) > len(persons[j].InvolvedCases)
	})
	sample := []string{}
	for _, p := range persons {
		if len(sample) == maxSamplePeople {
			break
		}
		sample = append(sample, p.Name)
	}

	return &Vocabulary{
		AssetTypes:   mergeWithSeed(SeedAssetTypes, assetCounts),
		OutcomeTypes: mergeWithSeed(SeedOutcomeTypes, outcomeCounts),
		EventTypes:   mergeWithSeed(SeedEventTypes, eventCounts),
		SamplePeople: sample,
	}
}

func mergeWithSeed(seed []string, counts map[string]int) []string {
	active := map[string]struct{}{}
	for _, term := range seed {
		active[term] = struct{}{}
	}
	for term, count := range counts {
		if count > promoteThreshold {
			active[term] = struct{}{}
		}
	}
	out := make([]string, 0, len(active))
	for term := range active {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// ContextHint renders the vocabulary as a compact block for extraction
// prompts, so repeated labels converge instead of drifting.
func (v *Vocabulary) ContextHint() string {
	var b strings.Builder
	b.WriteString("KNOWN LEGAL CONTEXT:\nUse these standard terms if applicable.\n\n")
	writeTermList(&b, "assets", v.AssetTypes)
	writeTermList(&b, "outcomes", v.OutcomeTypes)
	writeTermList(&b, "events", v.EventTypes)
	writeTermList(&b, "people", v.SamplePeople)
	return b.String()
}

func writeTermList(b *strings.Builder, label string, terms []string) {
	fmt.Fprintf(b, "%s[%d]: %s\n", label, len(terms), strings.Join(terms, ","))
}
