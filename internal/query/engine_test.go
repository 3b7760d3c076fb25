package query

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/uitrack/uitrack/internal/track"
)

func newRegistry(t *testing.T, ids ...string) *track.Registry {
	t.Helper()
	r := track.NewDefaultRegistry()
	for i, id := range ids {
		frame := track.Frame{X: float64(i * 100), Y: 0, Width: 50, Height: 50}
		if err := r.Upsert(id, frame, nil); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}
	return r
}

func TestEngine_Find(t *testing.T) {
	e := New(newRegistry(t, "button_save", "textfield_email"))

	el, ok := e.Find("button_save")
	if !ok || el.Identifier != "button_save" {
		t.Errorf("Find missing: ok=%v el=%+v", ok, el)
	}
	if _, ok := e.Find("nope"); ok {
		t.Error("Find should miss for unknown identifier")
	}
}

func TestEngine_Get(t *testing.T) {
	e := New(newRegistry(t, "button_save"))

	if _, err := e.Get("button_save"); err != nil {
		t.Errorf("Get hit: %v", err)
	}
	_, err := e.Get("missing_id")
	var nf *track.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *track.NotFoundError, got %v", err)
	}
	if nf.Identifier != "missing_id" {
		t.Errorf("identifier = %q", nf.Identifier)
	}
}

func TestEngine_Filter(t *testing.T) {
	e := New(newRegistry(t, "a", "b", "c"))

	wide := e.Filter(func(el track.Element) bool { return el.Frame.X >= 100 })
	if len(wide) != 2 {
		t.Errorf("expected 2 matches, got %d", len(wide))
	}
	none := e.Filter(func(track.Element) bool { return false })
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestEngine_InRegion(t *testing.T) {
	r := track.NewDefaultRegistry()
	add := func(id string, f track.Frame) {
		if err := r.Upsert(id, f, nil); err != nil {
			t.Fatal(err)
		}
	}
	add("inside", track.Frame{X: 10, Y: 10, Width: 20, Height: 20})
	add("overlapping", track.Frame{X: 90, Y: 90, Width: 50, Height: 50})
	add("outside", track.Frame{X: 500, Y: 500, Width: 20, Height: 20})
	add("touching_edge", track.Frame{X: 100, Y: 0, Width: 20, Height: 20})

	e := New(r)
	got := e.InRegion(track.Frame{X: 0, Y: 0, Width: 100, Height: 100})

	var ids []string
	for _, el := range got {
		ids = append(ids, el.Identifier)
	}
	sort.Strings(ids)
	want := []string{"inside", "overlapping"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("InRegion = %v, want %v", ids, want)
	}
}

func TestEngine_Matching(t *testing.T) {
	e := New(newRegistry(t, "button_primary_save", "button_secondary_cancel", "textfield_email"))

	got, err := e.Matching("button_.*")
	if err != nil {
		t.Fatalf("Matching: %v", err)
	}
	want := []string{"button_primary_save", "button_secondary_cancel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Matching = %v, want %v", got, want)
	}
}

func TestEngine_MatchingCaseInsensitiveSearch(t *testing.T) {
	e := New(newRegistry(t, "Button_Save", "nav.home"))

	got, err := e.Matching("BUTTON")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "Button_Save" {
		t.Errorf("case-insensitive search failed: %v", got)
	}

	// Search semantics: a match anywhere counts, no anchoring.
	got, err = e.Matching("home")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "nav.home" {
		t.Errorf("substring search failed: %v", got)
	}
}

func TestEngine_MatchingInvalidPattern(t *testing.T) {
	e := New(newRegistry(t, "button_save"))

	got, err := e.Matching("button_(")
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	var patternErr *track.PatternError
	if !errors.As(err, &patternErr) {
		t.Errorf("expected *track.PatternError, got %T", err)
	}
	if patternErr.Pattern != "button_(" {
		t.Errorf("pattern = %q", patternErr.Pattern)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestEngine_MatchingCachedPattern(t *testing.T) {
	reg := newRegistry(t, "button_save")
	e := New(reg)

	if _, err := e.Matching("button_.*"); err != nil {
		t.Fatal(err)
	}
	// A second call reuses the compiled pattern; results still track the
	// live registry.
	if err := reg.Upsert("button_cancel", track.Frame{X: 0, Y: 0, Width: 1, Height: 1}, nil); err != nil {
		t.Fatal(err)
	}
	got, err := e.Matching("button_.*")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("cached pattern returned stale results: %v", got)
	}
}

func TestEngine_MatchingElements(t *testing.T) {
	e := New(newRegistry(t, "button_save", "textfield_email"))

	got, err := e.MatchingElements("^button")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Identifier != "button_save" {
		t.Errorf("MatchingElements = %+v", got)
	}
}
