package ui

import (
	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/constellate/internal/field"
)

// pointerMarker eases a cursor glyph towards the pointer so it trails mouse
// moves instead of jumping between cells.
type pointerMarker struct {
	spring harmonica.Spring
	pos    field.Vec
	vel    field.Vec
	placed bool
}

func newPointerMarker(fps int) pointerMarker {
	return pointerMarker{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.9)}
}

func (m *pointerMarker) step(target field.Vec) field.Vec {
	if !m.placed {
		m.pos = target
		m.placed = true
		return m.pos
	}
	m.pos.X, m.vel.X = m.spring.Update(m.pos.X, m.vel.X, target.X)
	m.pos.Y, m.vel.Y = m.spring.Update(m.pos.Y, m.vel.Y, target.Y)
	return m.pos
}
