// Package track implements the element tracking core: an in-memory registry
// of UI element positions and metadata, updated by the UI layer on layout
// events and read by automation tooling.
package track

import "time"

// Point is a screen coordinate.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Frame is a screen rectangle in points.
type Frame struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"w"`
	Height float64 `yaml:"height" json:"h"`
}

// Center returns the midpoint of the frame. It is always derived, never
// stored, so it cannot drift from the frame itself.
func (f Frame) Center() Point {
	return Point{X: f.X + f.Width/2, Y: f.Y + f.Height/2}
}

// Intersects reports whether f and other share a positive-area overlap.
// Rectangles that only touch along an edge or corner do not intersect.
func (f Frame) Intersects(other Frame) bool {
	return f.X < other.X+other.Width && f.X+f.Width > other.X &&
		f.Y < other.Y+other.Height && f.Y+f.Height > other.Y
}

// Element is one tracked UI element: its identifier, screen frame, and
// caller-supplied metadata at a point in time.
type Element struct {
	Identifier string            `yaml:"identifier"        json:"id"`
	Frame      Frame             `yaml:"frame"             json:"frame"`
	Context    map[string]string `yaml:"context,omitempty" json:"ctx,omitempty"`
	Timestamp  time.Time         `yaml:"timestamp"         json:"ts"`
}

// ViewContext names the currently active screen plus arbitrary metadata.
// There is at most one live ViewContext per registry; updates replace it
// wholesale.
type ViewContext struct {
	Name     string            `yaml:"name,omitempty"     json:"name,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty" json:"meta,omitempty"`
}

func copyContext(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
