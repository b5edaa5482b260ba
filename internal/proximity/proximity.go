// Package proximity computes which points of a field are close enough to be
// connected.
package proximity

import "github.com/olivier-w/constellate/internal/field"

// Neighbors maps a point index to the indices of its connected points.
type Neighbors [][]int

// Of returns the neighbours of point i.
func (n Neighbors) Of(i int) []int {
	if i < 0 || i >= len(n) {
		return nil
	}
	return n[i]
}

// Links returns the total number of directed connections.
func (n Neighbors) Links() int {
	total := 0
	for _, near := range n {
		total += len(near)
	}
	return total
}

// Index finds neighbours under a distance threshold with a per-point cap.
type Index struct {
	minDist float64
	maxNear int
}

// New creates an Index. Points closer than minDist connect, at most maxNear
// per point.
func New(minDist float64, maxNear int) *Index {
	return &Index{minDist: minDist, maxNear: maxNear}
}

// Recompute builds a fresh mapping from a snapshot of positions.
//
// Every ordered pair is tested, so the pass is quadratic in the population.
// Neighbours are collected in index order and the cap keeps the first ones
// found under the threshold, not the nearest ones.
func (x *Index) Recompute(positions []field.Vec) Neighbors {
	out := make(Neighbors, len(positions))
	for i, p1 := range positions {
		var near []int
		for j, p2 := range positions {
			if i == j {
				continue
			}
			if len(near) >= x.maxNear {
				break
			}
			if field.Distance(p1, p2) < x.minDist {
				near = append(near, j)
			}
		}
		out[i] = near
	}
	return out
}
