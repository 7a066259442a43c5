package util

import (
	"testing"
)

func TestNewID_UniqueAndNonEmpty(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestMustNewID_Length(t *testing.T) {
	id := MustNewID()
	if len(id) != 21 {
		t.Fatalf("expected 21 character id, got %d (%s)", len(id), id)
	}
}
