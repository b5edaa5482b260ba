package render

import (
	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/field"
	"github.com/olivier-w/constellate/internal/util"
)

// Stats is the read-only snapshot a frame hands to the diagnostic overlay.
type Stats struct {
	Frame   uint64
	Width   float64
	Height  float64
	Pointer field.Vec
	Points  int
	Links   int // neighbour entries found this frame
	Drawn   int // connections actually drawn
	FPS     float64
	Paused  bool
	Config  config.Config
}

// Lines returns the overlay text, one label per line.
func (s Stats) Lines() []string {
	c := s.Config
	lines := []string{
		"W: " + util.FormatNumber(s.Width),
		"H: " + util.FormatNumber(s.Height),
		"mX: " + util.FormatNumber(s.Pointer.X),
		"mY: " + util.FormatNumber(s.Pointer.Y),
		"Points: " + util.FormatNumber(float64(s.Points)),
		"Margin: " + util.FormatNumber(c.Margin),
		"Boundary: " + util.FormatNumber(c.Boundary),
		"VMX: " + util.FormatNumber(c.VMX),
		"VMY: " + util.FormatNumber(c.VMY),
		"RM: " + util.FormatNumber(c.RM),
		"MIN_DIST: " + util.FormatNumber(c.MinDist),
		"MAX_NEAR: " + util.FormatNumber(float64(c.MaxNear)),
		"M_RADIUS: " + util.FormatNumber(c.MouseRadius),
		"Links: " + util.FormatNumber(float64(s.Drawn)) + "/" + util.FormatNumber(float64(s.Links)),
		"FPS: " + util.FormatNumber(s.FPS),
	}
	if s.Paused {
		lines = append(lines, "paused")
	}
	return lines
}
