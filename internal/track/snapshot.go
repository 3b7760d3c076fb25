package track

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable, atomically captured copy of registry state:
// every tracked element plus the view context as of TakenAt. Per-element
// consistency is guaranteed; elements upserted concurrently with the capture
// may or may not be included.
type Snapshot struct {
	ID       string      `yaml:"id"                json:"id"`
	TakenAt  time.Time   `yaml:"taken_at"          json:"taken_at"`
	Elements []Element   `yaml:"elements"          json:"elements"`
	Context  ViewContext `yaml:"context,omitempty" json:"context,omitempty"`
}

// Snapshot captures the current registry state under a single read lock.
// Elements are sorted by identifier so snapshots serialize deterministically.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	elements := make([]Element, 0, len(r.elements))
	for _, el := range r.elements {
		el.Context = copyContext(el.Context)
		elements = append(elements, el)
	}
	vc := r.context
	vc.Metadata = copyContext(vc.Metadata)
	r.mu.RUnlock()

	sort.Slice(elements, func(i, j int) bool {
		return elements[i].Identifier < elements[j].Identifier
	})
	return Snapshot{
		ID:       uuid.NewString(),
		TakenAt:  time.Now(),
		Elements: elements,
		Context:  vc,
	}
}

// Get returns the snapshotted element for id, if present.
func (s Snapshot) Get(id string) (Element, bool) {
	for _, el := range s.Elements {
		if el.Identifier == id {
			return el, true
		}
	}
	return Element{}, false
}

// SaveSnapshot writes a snapshot to path as JSON for later diffing or
// offline rendering.
func SaveSnapshot(path string, s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot previously written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return s, nil
}
