package boundary

import (
	"github.com/sethgrid/deskpet/internal/pet"
)

type Edges struct {
	Left   bool
	Right  bool
	Top    bool
	Bottom bool
}

func (e Edges) Any() bool {
	return e.Left || e.Right || e.Top || e.Bottom
}

type Result struct {
	Hit    bool
	Edges  Edges
	Bounce pet.Vec // informational; the mover recomputes targets per move
}

// Detector answers whether a point is inside the margin band of the viewport.
type Detector struct {
	Margin float64
	width  float64
	height float64
}

func NewDetector(margin float64, width, height int) *Detector {
	d := &Detector{Margin: margin}
	d.Resize(width, height)
	return d
}

// Resize refreshes the live viewport dimensions.
func (d *Detector) Resize(width, height int) {
	d.width = float64(width)
	d.height = float64(height)
}

func (d *Detector) Viewport() (float64, float64) {
	return d.width, d.height
}

// CheckBoundary reports the edges whose margin band contains the sprite at
// (x, y). A coordinate exactly on the band's inner line is not a hit, so a
// sprite snapped there can move away again.
func (d *Detector) CheckBoundary(x, y float64, size pet.Size) Result {
	edges := Edges{
		Left:   x < d.Margin,
		Right:  x > d.width-size.W-d.Margin,
		Top:    y < d.Margin,
		Bottom: y > d.height-size.H-d.Margin,
	}

	bounce := pet.Vec{X: 1, Y: 1}
	if edges.Left || edges.Right {
		bounce.X = -bounce.X
	}
	if edges.Top || edges.Bottom {
		bounce.Y = -bounce.Y
	}

	return Result{
		Hit:    edges.Any(),
		Edges:  edges,
		Bounce: bounce,
	}
}

// Snap moves a hit coordinate to the inner line of the edge it crossed and
// leaves the other axis alone.
func (d *Detector) Snap(x, y float64, size pet.Size, edges Edges) (float64, float64) {
	switch {
	case edges.Left:
		x = d.Margin
	case edges.Right:
		x = d.width - size.W - d.Margin
	}
	switch {
	case edges.Top:
		y = d.Margin
	case edges.Bottom:
		y = d.height - size.H - d.Margin
	}
	return x, y
}
