package field

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/olivier-w/constellate/internal/config"
)

// ErrTooManyPoints is returned when the spawn grid exceeds Config.MaxPoints.
var ErrTooManyPoints = errors.New("too many points")

// Field owns the point collection. Its population is fixed at creation; a
// resize only changes the bounds points reflect against.
type Field struct {
	points []Point
}

// Anchors returns the spawn grid for a surface: every multiple of margin
// strictly inside width and height, x-major.
func Anchors(width, height, margin float64) []Vec {
	if margin <= 0 {
		return nil
	}
	var out []Vec
	for x := margin; x < width; x += margin {
		for y := margin; y < height; y += margin {
			out = append(out, Vec{X: x, Y: y})
		}
	}
	return out
}

// GridSize returns how many anchors Anchors would produce.
func GridSize(width, height, margin float64) int {
	if margin <= 0 {
		return 0
	}
	cols, rows := 0, 0
	for x := margin; x < width; x += margin {
		cols++
	}
	for y := margin; y < height; y += margin {
		rows++
	}
	return cols * rows
}

// New spawns one point per grid anchor of a width x height surface.
func New(width, height float64, cfg config.Config, rng *rand.Rand) (*Field, error) {
	if n := GridSize(width, height, cfg.Margin); n > cfg.MaxPoints {
		return nil, fmt.Errorf("%w: %.0fx%.0f at margin %v spawns %d, limit %d",
			ErrTooManyPoints, width, height, cfg.Margin, n, cfg.MaxPoints)
	}

	anchors := Anchors(width, height, cfg.Margin)
	f := &Field{points: make([]Point, 0, len(anchors))}
	for _, a := range anchors {
		f.points = append(f.points, NewPoint(a, cfg, rng))
	}
	return f, nil
}

// FromPoints wraps an existing collection.
func FromPoints(points []Point) *Field {
	return &Field{points: points}
}

// Len returns the population.
func (f *Field) Len() int { return len(f.points) }

// Point returns a pointer to the i-th point for in-place updates.
func (f *Field) Point(i int) *Point { return &f.points[i] }

// Points exposes the collection. Callers must not append to it.
func (f *Field) Points() []Point { return f.points }

// Positions copies every position into dst, growing it as needed.
func (f *Field) Positions(dst []Vec) []Vec {
	dst = dst[:0]
	for i := range f.points {
		dst = append(dst, f.points[i].Pos)
	}
	return dst
}

// Advance moves every point one step within a width x height surface.
func (f *Field) Advance(width, height float64) {
	for i := range f.points {
		f.points[i].Advance(width, height)
	}
}
