// Package nav is the automation-facing façade over the tracking registry.
// It resolves identifiers to screen points and dispatches interaction
// intents to externally registered callbacks, with timeout-bounded waiting
// for elements that have not appeared yet.
package nav

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/uitrack/uitrack/internal/query"
	"github.com/uitrack/uitrack/internal/track"
)

// DefaultPollInterval is the delay between existence checks in
// WaitForElement.
const DefaultPollInterval = 100 * time.Millisecond

// Outcome is the closed set of results an automation operation can produce.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeNotFound Outcome = "element_not_found"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeError    Outcome = "error"
)

// Result is the response of every façade operation. Exactly one Outcome is
// set; ElementNotFound and Timeout are ordinary control flow, not failures.
type Result struct {
	Outcome    Outcome     `yaml:"outcome"              json:"outcome"`
	Identifier string      `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Point      *track.Point `yaml:"point,omitempty"     json:"point,omitempty"`
	Matches    []string    `yaml:"matches,omitempty"    json:"matches,omitempty"`
	Elapsed    string      `yaml:"elapsed,omitempty"    json:"elapsed,omitempty"`
	Error      string      `yaml:"error,omitempty"      json:"error,omitempty"`
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Outcome == OutcomeSuccess }

func success() Result {
	return Result{Outcome: OutcomeSuccess}
}

func notFound(id string) Result {
	return Result{Outcome: OutcomeNotFound, Identifier: id}
}

func errorResult(err error) Result {
	return Result{Outcome: OutcomeError, Error: err.Error()}
}

// Hooks are the externally registered automation callbacks. Any field may be
// nil; a missing callback is not an error, the operation still succeeds once
// the identifier resolves.
type Hooks struct {
	OnElementTap func(identifier string, p track.Point)
	OnTextInput  func(identifier, text string)
	OnSwipe      func(from, to track.Point)
}

// Navigator composes the registry and query engine into tap/type/swipe/wait
// operations. It holds no per-operation state; every call is independent.
type Navigator struct {
	reg          *track.Registry
	queries      *query.Engine
	hooks        Hooks
	logger       InteractionLogger
	pollInterval time.Duration
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithHooks registers the automation callbacks.
func WithHooks(h Hooks) Option {
	return func(n *Navigator) { n.hooks = h }
}

// WithLogger sets the interaction logger.
func WithLogger(l InteractionLogger) Option {
	return func(n *Navigator) { n.logger = l }
}

// WithPollInterval overrides the WaitForElement polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(n *Navigator) {
		if d > 0 {
			n.pollInterval = d
		}
	}
}

// New creates a navigator over reg.
func New(reg *track.Registry, opts ...Option) *Navigator {
	n := &Navigator{
		reg:          reg,
		queries:      query.New(reg),
		logger:       NopLogger{},
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// TapElement resolves id to its center point and dispatches a tap. Success
// means the identifier resolved and the callback ran, not that any UI
// confirmed the tap.
func (n *Navigator) TapElement(id string) Result {
	el, ok := n.reg.Get(id)
	if !ok {
		return notFound(id)
	}
	center := el.Frame.Center()
	n.logInteraction(id, "tap", map[string]string{
		"x": formatCoord(center.X),
		"y": formatCoord(center.Y),
	})
	if n.hooks.OnElementTap != nil {
		n.hooks.OnElementTap(id, center)
	}
	res := success()
	res.Identifier = id
	res.Point = &center
	return res
}

// TypeText resolves id and dispatches text input. Only the text length is
// logged; the raw text goes to the callback untouched.
func (n *Navigator) TypeText(id, text string) Result {
	el, ok := n.reg.Get(id)
	if !ok {
		return notFound(id)
	}
	n.logInteraction(id, "type", map[string]string{
		"length": strconv.Itoa(len(text)),
	})
	if n.hooks.OnTextInput != nil {
		n.hooks.OnTextInput(id, text)
	}
	center := el.Frame.Center()
	res := success()
	res.Identifier = id
	res.Point = &center
	return res
}

// Swipe dispatches a coordinate-based swipe. There is no element lookup, so
// it cannot fail: swipes address the screen, not an identifier.
func (n *Navigator) Swipe(from, to track.Point) Result {
	n.logNavigation(pointLabel(from), pointLabel(to), "swipe")
	if n.hooks.OnSwipe != nil {
		n.hooks.OnSwipe(from, to)
	}
	return success()
}

// WaitForElement polls until id is tracked or timeout elapses. The element
// is checked immediately, then on a fixed interval; the loop never spins.
// Cancelling ctx stops polling early with an error result and leaves the
// registry untouched.
func (n *Navigator) WaitForElement(ctx context.Context, id string, timeout time.Duration) Result {
	start := time.Now()
	if _, ok := n.reg.Get(id); ok {
		return n.waitResult(id, start)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return errorResult(fmt.Errorf("wait for %q: %w", id, ctx.Err()))
		case <-deadline.C:
			return Result{
				Outcome:    OutcomeTimeout,
				Identifier: id,
				Elapsed:    elapsedLabel(start),
			}
		case <-ticker.C:
			if _, ok := n.reg.Get(id); ok {
				return n.waitResult(id, start)
			}
		}
	}
}

func (n *Navigator) waitResult(id string, start time.Time) Result {
	res := success()
	res.Identifier = id
	res.Elapsed = elapsedLabel(start)
	return res
}

// FindElements returns identifiers matching pattern. Invalid patterns are
// fail-soft: the result carries the error but an empty match list, and
// nothing is thrown past this boundary.
func (n *Navigator) FindElements(pattern string) Result {
	ids, err := n.queries.Matching(pattern)
	if err != nil {
		res := errorResult(err)
		res.Matches = []string{}
		return res
	}
	res := success()
	res.Matches = ids
	return res
}

// FindElementsStrict is the validated variant: it surfaces the pattern error
// to the caller directly.
func (n *Navigator) FindElementsStrict(pattern string) ([]string, error) {
	return n.queries.Matching(pattern)
}

// CurrentContext is a pass-through read of the view context.
func (n *Navigator) CurrentContext() track.ViewContext {
	return n.reg.Context()
}

// AllElements is a pass-through read of every tracked element.
func (n *Navigator) AllElements() []track.Element {
	return n.reg.All()
}

// Queries exposes the underlying query engine for callers that need region
// or predicate lookups directly.
func (n *Navigator) Queries() *query.Engine {
	return n.queries
}

// logInteraction and logNavigation shield callers from logger failures: the
// logger is fire-and-forget and a panic inside it must not surface.
func (n *Navigator) logInteraction(id, action string, ctx map[string]string) {
	defer func() { _ = recover() }()
	n.logger.LogInteraction(id, action, ctx)
}

func (n *Navigator) logNavigation(from, to, method string) {
	defer func() { _ = recover() }()
	n.logger.LogNavigation(from, to, method)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pointLabel(p track.Point) string {
	return fmt.Sprintf("(%s,%s)", formatCoord(p.X), formatCoord(p.Y))
}

func elapsedLabel(start time.Time) string {
	return fmt.Sprintf("%.1fs", time.Since(start).Seconds())
}
