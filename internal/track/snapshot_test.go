package track

import (
	"path/filepath"
	"testing"
)

func TestSnapshot_CapturesElementsAndContext(t *testing.T) {
	r := NewDefaultRegistry()
	if err := r.Upsert("b", Frame{0, 0, 10, 10}, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Upsert("a", Frame{5, 5, 10, 10}, map[string]string{"k": "v"}); err != nil {
		t.Fatal(err)
	}
	if err := r.SetContext("home", map[string]string{"tab": "feed"}); err != nil {
		t.Fatal(err)
	}

	snap := r.Snapshot()

	if snap.ID == "" {
		t.Error("snapshot ID should be set")
	}
	if snap.TakenAt.IsZero() {
		t.Error("snapshot timestamp should be set")
	}
	if len(snap.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(snap.Elements))
	}
	// Sorted by identifier for deterministic serialization.
	if snap.Elements[0].Identifier != "a" || snap.Elements[1].Identifier != "b" {
		t.Errorf("unexpected order: %s, %s", snap.Elements[0].Identifier, snap.Elements[1].Identifier)
	}
	if snap.Context.Name != "home" {
		t.Errorf("context name = %q", snap.Context.Name)
	}

	// Later registry mutations must not show up in the captured snapshot.
	r.Remove("a")
	if err := r.SetContext("elsewhere", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Get("a"); !ok {
		t.Error("snapshot lost element after registry mutation")
	}
	if snap.Context.Name != "home" {
		t.Error("snapshot context changed after registry mutation")
	}
}

func TestSnapshot_DistinctIDs(t *testing.T) {
	r := NewDefaultRegistry()
	if r.Snapshot().ID == r.Snapshot().ID {
		t.Error("snapshots should have distinct IDs")
	}
}

func TestSnapshot_SaveLoadRoundTrip(t *testing.T) {
	r := NewDefaultRegistry()
	if err := r.Upsert("el", Frame{1, 2, 3, 4}, map[string]string{"k": "v"}); err != nil {
		t.Fatal(err)
	}
	snap := r.Snapshot()

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if loaded.ID != snap.ID {
		t.Errorf("ID = %q, want %q", loaded.ID, snap.ID)
	}
	el, ok := loaded.Get("el")
	if !ok {
		t.Fatal("element missing after round trip")
	}
	if el.Frame != (Frame{1, 2, 3, 4}) || el.Context["k"] != "v" {
		t.Errorf("element mangled: %+v", el)
	}
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
