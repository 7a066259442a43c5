package workspace

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

func TestFileStoreLoadMissingStartsFresh(t *testing.T) {
	store := NewFileStore(FileStoreParams{Path: filepath.Join(t.TempDir(), "workspace.json")})

	graph, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(graph.Entities) != 0 || len(graph.DocumentIDs) != 0 {
		t.Errorf("fresh graph not empty: %+v", graph)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "workspace.json")
	store := NewFileStore(FileStoreParams{Path: path})
	ctx := context.Background()

	graph := gsw.NewGlobalGraph()
	graph.Entities = append(graph.Entities, &gsw.Entity{
		ID:          "ent-1",
		Kind:        gsw.EntityKindPerson,
		Name:        "John Smith",
		Description: "The applicant husband.",
		Aliases:     []string{"the husband"},
	})
	end := "2020-01-01"
	graph.States = append(graph.States, &gsw.State{
		ID:       "st-1",
		EntityID: "ent-1",
		Name:     "MaritalStatus",
		Value:    "Married",
		EndDate:  &end,
	})
	graph.DocumentIDs = []string{"doc-1"}

	if err := store.Save(ctx, graph); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Entities) != 1 || loaded.Entities[0].Name != "John Smith" {
		t.Errorf("entities did not round trip: %+v", loaded.Entities)
	}
	if len(loaded.States) != 1 || loaded.States[0].EndDate == nil || *loaded.States[0].EndDate != "2020-01-01" {
		t.Errorf("states did not round trip: %+v", loaded.States)
	}
	if len(loaded.DocumentIDs) != 1 || loaded.DocumentIDs[0] != "doc-1" {
		t.Errorf("document ids did not round trip: %v", loaded.DocumentIDs)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.json")
	store := NewFileStore(FileStoreParams{Path: path})
	ctx := context.Background()

	first := gsw.NewGlobalGraph()
	first.DocumentIDs = []string{"doc-1"}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := gsw.NewGlobalGraph()
	second.DocumentIDs = []string{"doc-1", "doc-2"}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.DocumentIDs) != 2 {
		t.Errorf("DocumentIDs = %v, want two entries", loaded.DocumentIDs)
	}
}
