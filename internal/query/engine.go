// Package query provides read-only lookups over the tracking registry:
// exact find, predicate filter, region intersection, and regex matching
// over identifiers.
package query

import (
	"regexp"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/uitrack/uitrack/internal/track"
)

// Compiled patterns are cached so agents polling with the same filter do not
// recompile on every call.
const (
	patternTTL     = 5 * time.Minute
	patternCleanup = 10 * time.Minute
)

// Engine answers queries against a registry. It never mutates registry
// state.
type Engine struct {
	reg      *track.Registry
	patterns *gocache.Cache
}

// New creates a query engine over reg.
func New(reg *track.Registry) *Engine {
	return &Engine{
		reg:      reg,
		patterns: gocache.New(patternTTL, patternCleanup),
	}
}

// Find returns the element for an exact identifier.
func (e *Engine) Find(id string) (track.Element, bool) {
	return e.reg.Get(id)
}

// Get is the explicit-error variant of Find: a miss yields a
// *track.NotFoundError instead of a bare false.
func (e *Engine) Get(id string) (track.Element, error) {
	el, ok := e.reg.Get(id)
	if !ok {
		return track.Element{}, &track.NotFoundError{Identifier: id}
	}
	return el, nil
}

// Filter returns all elements satisfying pred. Result order is unspecified;
// callers that need ordering must sort.
func (e *Engine) Filter(pred func(track.Element) bool) []track.Element {
	var out []track.Element
	for _, el := range e.reg.All() {
		if pred(el) {
			out = append(out, el)
		}
	}
	return out
}

// InRegion returns elements whose frame overlaps region with positive area.
// Frames that only touch the region's edge are excluded.
func (e *Engine) InRegion(region track.Frame) []track.Element {
	return e.Filter(func(el track.Element) bool {
		return el.Frame.Intersects(region)
	})
}

// Matching returns the identifiers matching pattern, compiled as a
// case-insensitive regular expression with search semantics (a match
// anywhere in the identifier counts). An invalid pattern yields a
// *track.PatternError; callers that want fail-soft behavior treat that as an
// empty result. Identifiers are returned sorted for stable output.
func (e *Engine) Matching(pattern string) ([]string, error) {
	re, err := e.compile(pattern)
	if err != nil {
		return nil, &track.PatternError{Pattern: pattern, Err: err}
	}
	var ids []string
	for _, el := range e.reg.All() {
		if re.MatchString(el.Identifier) {
			ids = append(ids, el.Identifier)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// MatchingElements is Matching but returns full element records.
func (e *Engine) MatchingElements(pattern string) ([]track.Element, error) {
	re, err := e.compile(pattern)
	if err != nil {
		return nil, &track.PatternError{Pattern: pattern, Err: err}
	}
	elements := e.Filter(func(el track.Element) bool {
		return re.MatchString(el.Identifier)
	})
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].Identifier < elements[j].Identifier
	})
	return elements, nil
}

func (e *Engine) compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := e.patterns.Get(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	e.patterns.SetDefault(pattern, re)
	return re, nil
}
