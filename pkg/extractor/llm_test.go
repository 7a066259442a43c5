package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Verridian-ai/legal-gsw/pkg/ai"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

// stubAIClient replays canned structured outputs, failing the first
// failBefore attempts.
type stubAIClient struct {
	responses  []string
	failBefore int
	calls      int
	prompts    []string
}

func (s *stubAIClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAIClient) GenerateCompletionWithFormat(ctx context.Context, name string, description string, prompt string, out any, opts ...ai.GenerateOption) error {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.calls <= s.failBefore {
		return errors.New("model unavailable")
	}
	idx := s.calls - s.failBefore - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return json.Unmarshal([]byte(s.responses[idx]), out)
}

func (s *stubAIClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAIClient) ResetMetrics()               {}
func (s *stubAIClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

const validResponse = `{
	"case_id": "FAM-2021-042",
	"title": "Smith v Smith",
	"persons": [
		{"id": "p1", "name": "John Smith", "description": "The applicant husband.", "aliases": ["the husband"], "roles": ["Applicant", "Husband"], "dob": "1975-03-02"},
		{"id": "p2", "name": "Jane Smith", "description": "The respondent wife.", "roles": ["Respondent", "Wife"]}
	],
	"objects": [
		{"id": "o1", "name": "12 Acacia Avenue", "type": "Real Property", "description": "Former matrimonial home.", "aliases": ["the family home"]}
	],
	"timeline": [
		{"id": "e1", "date": "2010-06-12", "type": "Marriage", "description": "The parties married.", "participant_ids": ["p1", "p2"]},
		{"id": "e2", "type": "Separation", "description": "The parties separated under one roof.", "participant_ids": ["p1", "p2"], "object_ids": ["o1"]}
	],
	"states": [
		{"id": "s1", "entity_id": "p1", "name": "MaritalStatus", "value": "Married", "start_date": "2010-06-12", "is_ongoing": true},
		{"id": "s2", "entity_id": "p1", "name": "Employment", "value": "Engineer", "start_date": "2008", "end_date": "2020"}
	],
	"outcomes": [
		{"id": "out1", "type": "Property Order", "description": "Home transferred to the wife.", "orders": ["The husband transfer his interest in the home to the wife."], "granted_to_ids": ["p2"], "related_object_ids": ["o1"]}
	]
}`

func TestExtractBuildsLocalGraph(t *testing.T) {
	client := &stubAIClient{responses: []string{validResponse}}
	ex := NewLLMExtractor(LLMExtractorParams{AIClient: client})

	local, err := ex.Extract(context.Background(), "doc-1", "judgment text", "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if local.CaseID != "doc-1" {
		t.Errorf("CaseID = %q, want doc-1", local.CaseID)
	}
	if local.Title != "Smith v Smith" {
		t.Errorf("Title = %q, want Smith v Smith", local.Title)
	}
	if len(local.Entities) != 3 {
		t.Fatalf("len(Entities) = %d, want 3", len(local.Entities))
	}

	husband := local.Entities[0]
	if husband.Kind != gsw.EntityKindPerson {
		t.Errorf("husband.Kind = %q, want person", husband.Kind)
	}
	if husband.DateOfBirth == nil || *husband.DateOfBirth != "1975-03-02" {
		t.Errorf("husband.DateOfBirth = %v, want 1975-03-02", husband.DateOfBirth)
	}

	wife := local.Entities[1]
	if wife.DateOfBirth != nil {
		t.Errorf("wife.DateOfBirth = %v, want nil", wife.DateOfBirth)
	}

	home := local.Entities[2]
	if home.Kind != gsw.EntityKindObject {
		t.Errorf("home.Kind = %q, want object", home.Kind)
	}
	if home.Type != "Real Property" {
		t.Errorf("home.Type = %q, want Real Property", home.Type)
	}

	if len(local.Timeline) != 2 {
		t.Fatalf("len(Timeline) = %d, want 2", len(local.Timeline))
	}
	if local.Timeline[1].Date != "" {
		t.Errorf("undated event Date = %q, want empty", local.Timeline[1].Date)
	}

	if len(local.States) != 2 {
		t.Fatalf("len(States) = %d, want 2", len(local.States))
	}
	open := local.States[0]
	if open.EndDate != nil || !open.IsOngoing {
		t.Errorf("first state should be open, got EndDate=%v IsOngoing=%v", open.EndDate, open.IsOngoing)
	}
	closed := local.States[1]
	if closed.EndDate == nil || *closed.EndDate != "2020" {
		t.Errorf("second state EndDate = %v, want 2020", closed.EndDate)
	}

	if len(local.Outcomes) != 1 {
		t.Fatalf("len(Outcomes) = %d, want 1", len(local.Outcomes))
	}
}

func TestExtractRetriesOnModelFailure(t *testing.T) {
	client := &stubAIClient{responses: []string{validResponse}, failBefore: 2}
	ex := NewLLMExtractor(LLMExtractorParams{AIClient: client, MaxTries: 3})

	if _, err := ex.Extract(context.Background(), "doc-1", "judgment text", ""); err != nil {
		t.Fatalf("Extract() error = %v, want retry success", err)
	}
	if client.calls != 3 {
		t.Errorf("calls = %d, want 3", client.calls)
	}
}

func TestExtractFailsAfterMaxTries(t *testing.T) {
	client := &stubAIClient{responses: []string{validResponse}, failBefore: 10}
	ex := NewLLMExtractor(LLMExtractorParams{AIClient: client, MaxTries: 2})

	if _, err := ex.Extract(context.Background(), "doc-1", "judgment text", ""); err == nil {
		t.Fatal("Extract() error = nil, want failure after retries")
	}
	if client.calls != 2 {
		t.Errorf("calls = %d, want 2", client.calls)
	}
}

func TestExtractRejectsInvalidPayload(t *testing.T) {
	// Person missing its required id.
	invalid := `{"persons": [{"name": "John Smith"}]}`
	client := &stubAIClient{responses: []string{invalid}}
	ex := NewLLMExtractor(LLMExtractorParams{AIClient: client, MaxTries: 1})

	_, err := ex.Extract(context.Background(), "doc-1", "judgment text", "")
	if err == nil {
		t.Fatal("Extract() error = nil, want validation failure")
	}
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("error = %v, want validation failure", err)
	}
}

func TestExtractPromptCarriesContextHint(t *testing.T) {
	client := &stubAIClient{responses: []string{validResponse}}
	ex := NewLLMExtractor(LLMExtractorParams{AIClient: client})

	hint := "KNOWN LEGAL CONTEXT:\nasset_types[1]: Real Property"
	if _, err := ex.Extract(context.Background(), "doc-9", "judgment text", hint); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("prompts recorded = %d, want 1", len(client.prompts))
	}
	prompt := client.prompts[0]
	if !strings.Contains(prompt, hint) {
		t.Error("prompt does not carry the context hint")
	}
	if !strings.Contains(prompt, "doc-9") {
		t.Error("prompt does not carry the document id")
	}
	if !strings.Contains(prompt, "judgment text") {
		t.Error("prompt does not carry the document text")
	}
}

func TestExtractTruncatesLongDocuments(t *testing.T) {
	client := &stubAIClient{responses: []string{validResponse}}
	ex := NewLLMExtractor(LLMExtractorParams{AIClient: client, MaxInputTokens: 8})

	long := strings.Repeat("the marriage broke down irretrievably ", 50)
	if _, err := ex.Extract(context.Background(), "doc-1", long, ""); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	prompt := client.prompts[0]
	if strings.Contains(prompt, long) {
		t.Error("prompt was not truncated")
	}
	if !strings.Contains(prompt, "the marriage") {
		t.Error("prompt lost the document prefix")
	}
}
