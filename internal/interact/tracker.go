package interact

import (
	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/field"
)

// Tracker holds the latest pointer position and the startup mode.
// It is not safe for concurrent use; hosts write it from the frame goroutine.
type Tracker struct {
	mode    config.Mode
	pointer field.Vec

	radius    float64
	base      float64
	threshold float64
}

// New creates a tracker with the pointer at start.
func New(cfg config.Config, start field.Vec) *Tracker {
	return &Tracker{
		mode:      cfg.Mode,
		pointer:   start,
		radius:    cfg.MouseRadius,
		base:      cfg.BaseOpacity,
		threshold: cfg.ConnectionOpacity,
	}
}

// SetPointer records a pointer move. Any coordinate is accepted.
func (t *Tracker) SetPointer(x, y float64) {
	t.pointer = field.Vec{X: x, Y: y}
}

func (t *Tracker) Pointer() field.Vec { return t.pointer }

func (t *Tracker) Mode() config.Mode { return t.mode }

// Opacity returns 1 - d/radius + base for points within the pointer radius
// and base otherwise. The result is not clamped and reaches 1+base under the
// pointer.
func (t *Tracker) Opacity(p field.Vec) float64 {
	d := field.Distance(t.pointer, p)
	if d < t.radius {
		return 1 - d/t.radius + t.base
	}
	return t.base
}

// ShowsConnections reports whether a point at the given opacity draws its
// links.
func (t *Tracker) ShowsConnections(opacity float64) bool {
	if t.mode == config.Pointer {
		return opacity > t.threshold
	}
	return true
}
