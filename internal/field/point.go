package field

import (
	"math"
	"math/rand"

	"github.com/olivier-w/constellate/internal/config"
)

// Vec is a 2D position or velocity in surface pixels.
type Vec struct {
	X, Y float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Point is one star of the field.
type Point struct {
	Anchor  Vec // grid coordinate used at spawn only
	Pos     Vec
	Vel     Vec
	Radius  float64
	Opacity float64
}

// NewPoint spawns a point inside the jitter box below and left of anchor.
// Velocity components are rand*VM - 1, so their bias depends on VMX/VMY.
func NewPoint(anchor Vec, cfg config.Config, rng *rand.Rand) Point {
	return Point{
		Anchor: anchor,
		Pos: Vec{
			X: rng.Float64()*cfg.Boundary + (anchor.X - cfg.Boundary),
			Y: rng.Float64()*cfg.Boundary + (anchor.Y - cfg.Boundary),
		},
		Vel: Vec{
			X: rng.Float64()*cfg.VMX - 1,
			Y: rng.Float64()*cfg.VMY - 1,
		},
		Radius:  rng.Float64() * cfg.RM,
		Opacity: cfg.BaseOpacity,
	}
}

// Advance reflects the velocity off the surface edges and moves the point one
// step. The edge test uses the position from before the move and nothing is
// clamped, so a fast point may sit outside the surface for a tick.
func (p *Point) Advance(width, height float64) {
	if p.Pos.X > width || p.Pos.X < 0 {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y > height || p.Pos.Y < 0 {
		p.Vel.Y = -p.Vel.Y
	}
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
}
