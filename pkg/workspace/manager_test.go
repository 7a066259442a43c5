package workspace

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/reconcile"
)

// recordingIndex tracks upserts and never matches.
type recordingIndex struct {
	upserts map[string]string
}

func newRecordingIndex() *recordingIndex {
	return &recordingIndex{upserts: map[string]string{}}
}

func (r *recordingIndex) Upsert(ctx context.Context, entityID string, text string) error {
	r.upserts[entityID] = text
	return nil
}

func (r *recordingIndex) FindBestMatch(ctx context.Context, text string, threshold float64) (string, bool, error) {
	return "", false, nil
}

// failingStore fails Save to exercise the unpersisted path.
type failingStore struct{}

func (failingStore) Save(ctx context.Context, graph *gsw.GlobalGraph) error {
	return errors.New("disk full")
}

func (failingStore) Load(ctx context.Context) (*gsw.GlobalGraph, error) {
	return gsw.NewGlobalGraph(), nil
}

func newTestManager(t *testing.T) (*Manager, *recordingIndex) {
	t.Helper()
	idx := newRecordingIndex()
	store := NewFileStore(FileStoreParams{Path: filepath.Join(t.TempDir(), "workspace.json")})
	manager := NewManager(ManagerParams{
		Store:      store,
		Index:      idx,
		Reconciler: reconcile.NewReconciler(reconcile.ReconcilerParams{Index: idx}),
	})
	return manager, idx
}

func localGraphFixture() *gsw.LocalGraph {
	return &gsw.LocalGraph{
		CaseID: "doc-1",
		Entities: []*gsw.Entity{
			{ID: "p1", Kind: gsw.EntityKindPerson, Name: "John Smith", Description: "The applicant.", Roles: []string{"Applicant"}},
		},
		Timeline: []*gsw.Event{
			{ID: "e1", Date: "2010-06-12", Type: "Marriage", ParticipantIDs: []string{"p1"}},
		},
		States: []*gsw.State{
			{ID: "s1", EntityID: "p1", Name: "MaritalStatus", Value: "Married", IsOngoing: true},
		},
	}
}

func TestManagerApplyPersistsAndMarksLog(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	if err := manager.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	lg, err := manager.Apply(ctx, localGraphFixture(), "doc-1")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	last := lg.Phases[len(lg.Phases)-1]
	if last != reconcile.PhasePersisted {
		t.Errorf("final phase = %v, want PERSISTED", last)
	}

	snapshot := manager.Snapshot()
	if len(snapshot.Entities) != 1 {
		t.Errorf("snapshot entities = %d, want 1", len(snapshot.Entities))
	}
	if len(snapshot.DocumentIDs) != 1 || snapshot.DocumentIDs[0] != "doc-1" {
		t.Errorf("snapshot DocumentIDs = %v, want [doc-1]", snapshot.DocumentIDs)
	}
}

func TestManagerApplyFailedSaveLeavesLogUnpersisted(t *testing.T) {
	idx := newRecordingIndex()
	manager := NewManager(ManagerParams{
		Store:      failingStore{},
		Index:      idx,
		Reconciler: reconcile.NewReconciler(reconcile.ReconcilerParams{Index: idx}),
	})
	ctx := context.Background()

	if err := manager.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	lg, err := manager.Apply(ctx, localGraphFixture(), "doc-1")
	if err == nil {
		t.Fatal("Apply() error = nil, want save failure")
	}
	if lg == nil {
		t.Fatal("Apply() log = nil, want merge log despite save failure")
	}
	for _, p := range lg.Phases {
		if p == reconcile.PhasePersisted {
			t.Error("log marked persisted despite save failure")
		}
	}
}

func TestManagerLoadRebuildsIndex(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workspace.json")
	store := NewFileStore(FileStoreParams{Path: path})

	graph := gsw.NewGlobalGraph()
	graph.Entities = append(graph.Entities,
		&gsw.Entity{ID: "ent-1", Kind: gsw.EntityKindPerson, Name: "John Smith", Description: "The applicant."},
		&gsw.Entity{ID: "ent-2", Kind: gsw.EntityKindObject, Name: "12 Acacia Avenue", Description: "Former home."},
	)
	if err := store.Save(ctx, graph); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	idx := newRecordingIndex()
	manager := NewManager(ManagerParams{
		Store:      store,
		Index:      idx,
		Reconciler: reconcile.NewReconciler(reconcile.ReconcilerParams{Index: idx}),
	})
	if err := manager.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(idx.upserts) != 2 {
		t.Fatalf("index upserts = %d, want 2", len(idx.upserts))
	}
	if idx.upserts["ent-1"] != "John Smith The applicant." {
		t.Errorf("indexed text = %q", idx.upserts["ent-1"])
	}
}

func TestManagerApplyRequiresLoad(t *testing.T) {
	manager, _ := newTestManager(t)
	if _, err := manager.Apply(context.Background(), localGraphFixture(), "doc-1"); err == nil {
		t.Fatal("Apply() before Load() should fail")
	}
}

func TestManagerSnapshotIsIsolated(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()
	if err := manager.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := manager.Apply(ctx, localGraphFixture(), "doc-1"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	snapshot := manager.Snapshot()
	snapshot.Entities[0].Name = "mutated"

	if manager.Snapshot().Entities[0].Name == "mutated" {
		t.Error("snapshot mutation leaked into the workspace")
	}
}
