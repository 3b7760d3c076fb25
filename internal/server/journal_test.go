package server

import (
	"fmt"
	"testing"

	"github.com/uitrack/uitrack/internal/track"
)

func TestActionJournal_RecordsAndDrains(t *testing.T) {
	j := newActionJournal(10)
	hooks := j.Hooks()

	hooks.OnElementTap("button_save", track.Point{X: 60, Y: 45})
	hooks.OnTextInput("textfield_email", "hello")
	hooks.OnSwipe(track.Point{X: 0, Y: 500}, track.Point{X: 0, Y: 100})

	actions := j.Drain()
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[0].Action != "tap" || actions[0].Identifier != "button_save" {
		t.Errorf("tap = %+v", actions[0])
	}
	if actions[0].Point == nil || *actions[0].Point != (track.Point{X: 60, Y: 45}) {
		t.Errorf("tap point = %v", actions[0].Point)
	}
	if actions[1].Action != "type" || actions[1].Text != "hello" {
		t.Errorf("type = %+v", actions[1])
	}
	if actions[2].Action != "swipe" || actions[2].From == nil || actions[2].To == nil {
		t.Errorf("swipe = %+v", actions[2])
	}

	if again := j.Drain(); len(again) != 0 {
		t.Errorf("drain should empty the journal, got %d", len(again))
	}
}

func TestActionJournal_DropsOldestWhenFull(t *testing.T) {
	j := newActionJournal(3)
	hooks := j.Hooks()

	for i := 0; i < 5; i++ {
		hooks.OnElementTap(fmt.Sprintf("el_%d", i), track.Point{})
	}

	actions := j.Drain()
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[0].Identifier != "el_2" || actions[2].Identifier != "el_4" {
		t.Errorf("kept wrong window: %+v", actions)
	}
}
