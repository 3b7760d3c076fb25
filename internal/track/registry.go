package track

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultCapacity bounds how many elements a registry will track.
const DefaultCapacity = 10000

// Registry is the element tracking store. It owns all element and
// view-context state; every mutation goes through its mutex, so readers
// never observe a half-written record.
//
// When two goroutines upsert the same identifier concurrently, the write
// that acquires the mutex last wins. Both outcomes are complete records;
// there is no partial merge.
type Registry struct {
	mu       sync.RWMutex
	elements map[string]Element
	context  ViewContext
	capacity int
	policy   Policy
}

// NewRegistry creates a registry with the given capacity and validation
// policy. A capacity of 0 uses DefaultCapacity.
func NewRegistry(capacity int, policy Policy) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		elements: make(map[string]Element),
		capacity: capacity,
		policy:   policy,
	}
}

// NewDefaultRegistry creates a registry with default capacity and policy.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultCapacity, DefaultPolicy())
}

// Upsert validates and stores an element. Validation failures and capacity
// exhaustion return a typed error without mutating state. Overwriting an
// existing identifier is always permitted, even at capacity.
func (r *Registry) Upsert(id string, frame Frame, ctx map[string]string) error {
	if err := r.policy.Validate(id, frame, ctx); err != nil {
		return err
	}
	return r.store(id, frame, ctx)
}

// UpsertUnchecked is the best-effort legacy path: validation failures are
// logged and the element is stored anyway, bypassing the registry's
// validation invariants. Capacity is still enforced; an insert that would
// exceed it is dropped silently.
func (r *Registry) UpsertUnchecked(id string, frame Frame, ctx map[string]string) {
	if id == "" {
		return
	}
	if err := r.policy.Validate(id, frame, ctx); err != nil {
		slog.Debug("uitrack: storing element despite validation failure",
			"identifier", id, "err", err)
	}
	if err := r.store(id, frame, ctx); err != nil {
		slog.Debug("uitrack: dropping element", "identifier", id, "err", err)
	}
}

// store is the single write primitive shared by both upsert paths.
func (r *Registry) store(id string, frame Frame, ctx map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.elements[id]; !exists && len(r.elements) >= r.capacity {
		return &ResourceLimitError{Limit: r.capacity, Current: len(r.elements)}
	}
	r.elements[id] = Element{
		Identifier: id,
		Frame:      frame,
		Context:    copyContext(ctx),
		Timestamp:  time.Now(),
	}
	return nil
}

// Remove deletes an element. Removing an absent identifier is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.elements, id)
}

// Clear removes all elements and resets the view context in one atomic step.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements = make(map[string]Element)
	r.context = ViewContext{}
}

// Get returns a copy of the element for id.
func (r *Registry) Get(id string) (Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	el, ok := r.elements[id]
	if ok {
		el.Context = copyContext(el.Context)
	}
	return el, ok
}

// All returns a copy of every tracked element, in unspecified order.
func (r *Registry) All() []Element {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Element, 0, len(r.elements))
	for _, el := range r.elements {
		el.Context = copyContext(el.Context)
		out = append(out, el)
	}
	return out
}

// Len returns the number of tracked elements.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.elements)
}

// SetContext replaces the view context wholesale. Metadata exceeding the
// registry's size bound is rejected the same way element context is.
func (r *Registry) SetContext(name string, metadata map[string]string) error {
	if err := r.policy.ValidateContext(metadata); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.context = ViewContext{Name: name, Metadata: copyContext(metadata)}
	return nil
}

// Context returns a copy of the current view context.
func (r *Registry) Context() ViewContext {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vc := r.context
	vc.Metadata = copyContext(vc.Metadata)
	return vc
}

// NotifyAppeared is the UI-layer entry point for an element becoming
// visible. It is the validated upsert under its boundary name.
func (r *Registry) NotifyAppeared(id string, frame Frame, ctx map[string]string) error {
	return r.Upsert(id, frame, ctx)
}

// NotifyMoved updates an element's frame after a layout pass, keeping its
// existing context. If the identifier is unknown (the appearance event was
// missed), the element is registered with empty context.
func (r *Registry) NotifyMoved(id string, frame Frame) error {
	r.mu.RLock()
	existing, ok := r.elements[id]
	r.mu.RUnlock()
	if !ok {
		return r.Upsert(id, frame, nil)
	}
	return r.Upsert(id, frame, existing.Context)
}

// NotifyDisappeared removes an element when the UI layer reports it gone.
func (r *Registry) NotifyDisappeared(id string) {
	r.Remove(id)
}
