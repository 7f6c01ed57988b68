package boundary

import (
	"testing"

	"github.com/sethgrid/deskpet/internal/pet"
)

func TestCheckBoundary(t *testing.T) {
	size := pet.Size{W: 10, H: 4}
	d := NewDetector(2, 80, 24)

	tests := []struct {
		name   string
		x, y   float64
		edges  Edges
		bounce pet.Vec
	}{
		{name: "centre", x: 35, y: 10, bounce: pet.Vec{X: 1, Y: 1}},
		{name: "on inner line is not a hit", x: 2, y: 2, bounce: pet.Vec{X: 1, Y: 1}},
		{name: "left", x: 1, y: 10, edges: Edges{Left: true}, bounce: pet.Vec{X: -1, Y: 1}},
		{name: "right", x: 69, y: 10, edges: Edges{Right: true}, bounce: pet.Vec{X: -1, Y: 1}},
		{name: "top", x: 35, y: 0, edges: Edges{Top: true}, bounce: pet.Vec{X: 1, Y: -1}},
		{name: "bottom", x: 35, y: 19, edges: Edges{Bottom: true}, bounce: pet.Vec{X: 1, Y: -1}},
		{name: "corner", x: -3, y: 30, edges: Edges{Left: true, Bottom: true}, bounce: pet.Vec{X: -1, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := d.CheckBoundary(tt.x, tt.y, size)
			if r.Edges != tt.edges {
				t.Errorf("edges = %+v, want %+v", r.Edges, tt.edges)
			}
			if r.Hit != tt.edges.Any() {
				t.Errorf("hit = %v, want %v", r.Hit, tt.edges.Any())
			}
			if r.Bounce != tt.bounce {
				t.Errorf("bounce = %+v, want %+v", r.Bounce, tt.bounce)
			}
		})
	}
}

func TestResizeChangesRightAndBottom(t *testing.T) {
	size := pet.Size{W: 10, H: 4}
	d := NewDetector(2, 80, 24)
	if d.CheckBoundary(50, 10, size).Hit {
		t.Fatal("unexpected hit before resize")
	}
	d.Resize(60, 24)
	r := d.CheckBoundary(50, 10, size)
	if !r.Edges.Right {
		t.Errorf("expected right edge hit after shrinking, got %+v", r.Edges)
	}
}

func TestSnapStaysInsideBand(t *testing.T) {
	size := pet.Size{W: 10, H: 4}
	d := NewDetector(2, 80, 24)
	points := [][2]float64{{-50, 10}, {500, 10}, {30, -7}, {30, 99}, {-1, -1}, {200, 200}}
	for _, p := range points {
		r := d.CheckBoundary(p[0], p[1], size)
		x, y := d.Snap(p[0], p[1], size, r.Edges)
		if x < d.Margin || x > 80-size.W-d.Margin {
			t.Errorf("Snap(%v) x = %v outside band", p, x)
		}
		if y < d.Margin || y > 24-size.H-d.Margin {
			t.Errorf("Snap(%v) y = %v outside band", p, y)
		}
		if d.CheckBoundary(x, y, size).Hit {
			t.Errorf("Snap(%v) = (%v, %v) still hits", p, x, y)
		}
	}
}
