package track

import (
	"fmt"
	"reflect"
)

// ChangeKind classifies a difference between two snapshots.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeChanged ChangeKind = "changed"
)

// Change is one element-level difference between two snapshots.
type Change struct {
	Kind       ChangeKind           `yaml:"kind"              json:"kind"`
	Identifier string               `yaml:"identifier"        json:"id"`
	Fields     map[string][2]string `yaml:"fields,omitempty"  json:"fields,omitempty"`
}

// SnapshotDiff is the result of comparing two snapshots.
type SnapshotDiff struct {
	Changes        []Change `yaml:"changes,omitempty" json:"changes,omitempty"`
	UnchangedCount int      `yaml:"unchanged_count"   json:"unchanged_count"`
}

// DiffSnapshots compares two snapshots by identifier and reports elements
// that appeared, disappeared, or changed frame/context between them.
// Timestamps are ignored: an element that merely re-registered with the same
// frame and context counts as unchanged.
func DiffSnapshots(prev, curr Snapshot) SnapshotDiff {
	prevByID := make(map[string]Element, len(prev.Elements))
	for _, el := range prev.Elements {
		prevByID[el.Identifier] = el
	}
	currByID := make(map[string]Element, len(curr.Elements))
	for _, el := range curr.Elements {
		currByID[el.Identifier] = el
	}

	var diff SnapshotDiff
	for _, el := range curr.Elements {
		prevEl, existed := prevByID[el.Identifier]
		if !existed {
			diff.Changes = append(diff.Changes, Change{
				Kind:       ChangeAdded,
				Identifier: el.Identifier,
			})
			continue
		}
		fields := diffFields(prevEl, el)
		if len(fields) > 0 {
			diff.Changes = append(diff.Changes, Change{
				Kind:       ChangeChanged,
				Identifier: el.Identifier,
				Fields:     fields,
			})
		} else {
			diff.UnchangedCount++
		}
	}
	for _, el := range prev.Elements {
		if _, exists := currByID[el.Identifier]; !exists {
			diff.Changes = append(diff.Changes, Change{
				Kind:       ChangeRemoved,
				Identifier: el.Identifier,
			})
		}
	}
	return diff
}

func diffFields(prev, curr Element) map[string][2]string {
	fields := make(map[string][2]string)
	if prev.Frame != curr.Frame {
		fields["frame"] = [2]string{
			fmt.Sprintf("%v", prev.Frame),
			fmt.Sprintf("%v", curr.Frame),
		}
	}
	if !reflect.DeepEqual(prev.Context, curr.Context) {
		fields["context"] = [2]string{
			fmt.Sprintf("%v", prev.Context),
			fmt.Sprintf("%v", curr.Context),
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
