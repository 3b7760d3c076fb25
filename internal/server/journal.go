package server

import (
	"sync"
	"time"

	"github.com/uitrack/uitrack/internal/nav"
	"github.com/uitrack/uitrack/internal/track"
)

const defaultJournalSize = 256

// DispatchedAction is one interaction intent emitted by the façade, queued
// for the external input driver to execute.
type DispatchedAction struct {
	Action     string       `yaml:"action"               json:"action"`
	Identifier string       `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Point      *track.Point `yaml:"point,omitempty"      json:"point,omitempty"`
	From       *track.Point `yaml:"from,omitempty"       json:"from,omitempty"`
	To         *track.Point `yaml:"to,omitempty"         json:"to,omitempty"`
	Text       string       `yaml:"text,omitempty"       json:"text,omitempty"`
	TS         time.Time    `yaml:"ts"                   json:"ts"`
}

// actionJournal buffers dispatched actions until the driver drains them.
// When the buffer is full the oldest entries are dropped; intents are
// best-effort signals, not a durable queue.
type actionJournal struct {
	mu      sync.Mutex
	actions []DispatchedAction
	max     int
}

func newActionJournal(max int) *actionJournal {
	return &actionJournal{max: max}
}

func (j *actionJournal) append(a DispatchedAction) {
	a.TS = time.Now()
	j.mu.Lock()
	defer j.mu.Unlock()
	j.actions = append(j.actions, a)
	if len(j.actions) > j.max {
		j.actions = j.actions[len(j.actions)-j.max:]
	}
}

// Drain returns all buffered actions and empties the journal.
func (j *actionJournal) Drain() []DispatchedAction {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := j.actions
	j.actions = nil
	return out
}

// Hooks returns façade callbacks that record into the journal.
func (j *actionJournal) Hooks() nav.Hooks {
	return nav.Hooks{
		OnElementTap: func(identifier string, p track.Point) {
			j.append(DispatchedAction{Action: "tap", Identifier: identifier, Point: &p})
		},
		OnTextInput: func(identifier, text string) {
			j.append(DispatchedAction{Action: "type", Identifier: identifier, Text: text})
		},
		OnSwipe: func(from, to track.Point) {
			j.append(DispatchedAction{Action: "swipe", From: &from, To: &to})
		},
	}
}
