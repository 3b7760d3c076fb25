package track

import "testing"

func snapOf(elements ...Element) Snapshot {
	return Snapshot{Elements: elements}
}

func TestDiffSnapshots(t *testing.T) {
	prev := snapOf(
		Element{Identifier: "stays", Frame: Frame{0, 0, 10, 10}},
		Element{Identifier: "moves", Frame: Frame{0, 0, 10, 10}},
		Element{Identifier: "leaves", Frame: Frame{5, 5, 10, 10}},
	)
	curr := snapOf(
		Element{Identifier: "stays", Frame: Frame{0, 0, 10, 10}},
		Element{Identifier: "moves", Frame: Frame{50, 0, 10, 10}},
		Element{Identifier: "arrives", Frame: Frame{9, 9, 10, 10}},
	)

	diff := DiffSnapshots(prev, curr)

	if diff.UnchangedCount != 1 {
		t.Errorf("unchanged = %d, want 1", diff.UnchangedCount)
	}

	kinds := make(map[string]ChangeKind)
	for _, c := range diff.Changes {
		kinds[c.Identifier] = c.Kind
	}
	if kinds["arrives"] != ChangeAdded {
		t.Errorf("arrives = %v, want added", kinds["arrives"])
	}
	if kinds["leaves"] != ChangeRemoved {
		t.Errorf("leaves = %v, want removed", kinds["leaves"])
	}
	if kinds["moves"] != ChangeChanged {
		t.Errorf("moves = %v, want changed", kinds["moves"])
	}
	if _, ok := kinds["stays"]; ok {
		t.Error("unchanged element should not appear in changes")
	}
}

func TestDiffSnapshots_ContextChange(t *testing.T) {
	prev := snapOf(Element{Identifier: "el", Frame: Frame{0, 0, 1, 1}, Context: map[string]string{"v": "1"}})
	curr := snapOf(Element{Identifier: "el", Frame: Frame{0, 0, 1, 1}, Context: map[string]string{"v": "2"}})

	diff := DiffSnapshots(prev, curr)
	if len(diff.Changes) != 1 || diff.Changes[0].Kind != ChangeChanged {
		t.Fatalf("changes = %+v", diff.Changes)
	}
	if _, ok := diff.Changes[0].Fields["context"]; !ok {
		t.Errorf("expected context field diff, got %v", diff.Changes[0].Fields)
	}
}

func TestDiffSnapshots_TimestampIgnored(t *testing.T) {
	prev := snapOf(Element{Identifier: "el", Frame: Frame{0, 0, 1, 1}})
	curr := snapOf(Element{Identifier: "el", Frame: Frame{0, 0, 1, 1}})
	curr.Elements[0].Timestamp = curr.Elements[0].Timestamp.AddDate(0, 0, 1)

	diff := DiffSnapshots(prev, curr)
	if len(diff.Changes) != 0 {
		t.Errorf("re-registration with same payload should be unchanged, got %+v", diff.Changes)
	}
}
