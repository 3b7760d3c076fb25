package track

import "testing"

func TestFrameCenter(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  Point
	}{
		{"origin", Frame{X: 0, Y: 0, Width: 100, Height: 50}, Point{X: 50, Y: 25}},
		{"offset", Frame{X: 10, Y: 20, Width: 100, Height: 50}, Point{X: 60, Y: 45}},
		{"zero_size", Frame{X: 5, Y: 7}, Point{X: 5, Y: 7}},
		{"fractional", Frame{X: 1, Y: 1, Width: 3, Height: 5}, Point{X: 2.5, Y: 3.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.frame.Center()
			if got != tt.want {
				t.Errorf("Center() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrameIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Frame
		want bool
	}{
		{"overlapping", Frame{0, 0, 100, 100}, Frame{50, 50, 100, 100}, true},
		{"contained", Frame{0, 0, 200, 200}, Frame{50, 50, 10, 10}, true},
		{"disjoint", Frame{0, 0, 10, 10}, Frame{20, 20, 10, 10}, false},
		{"touching_edge", Frame{0, 0, 100, 100}, Frame{100, 0, 100, 100}, false},
		{"touching_corner", Frame{0, 0, 10, 10}, Frame{10, 10, 10, 10}, false},
		{"zero_width_inside", Frame{0, 0, 100, 100}, Frame{50, 50, 0, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Intersection is symmetric
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
