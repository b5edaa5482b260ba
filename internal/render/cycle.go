package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/field"
	"github.com/olivier-w/constellate/internal/interact"
	"github.com/olivier-w/constellate/internal/proximity"
)

// ErrStop can be returned from a Run callback to end the loop cleanly.
var ErrStop = errors.New("stop")

const frameWindow = 60

// Cycle runs one frame at a time: resize, clear, recompute neighbours, then
// draw and advance each point in index order.
type Cycle struct {
	cfg     config.Config
	palette config.Palette

	field    *field.Field
	index    *proximity.Index
	tracker  *interact.Tracker
	surface  Surface
	viewport Viewport

	snapshot []field.Vec
	near     proximity.Neighbors
	times    *FrameTimes
	frames   uint64
	paused   bool

	now func() time.Time
}

// NewCycle wires a cycle. cfg must already be validated.
func NewCycle(cfg config.Config, f *field.Field, tr *interact.Tracker, s Surface, vp Viewport) (*Cycle, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &Cycle{
		cfg:      cfg,
		palette:  pal,
		field:    f,
		index:    proximity.New(cfg.MinDist, cfg.MaxNear),
		tracker:  tr,
		surface:  s,
		viewport: vp,
		times:    NewFrameTimes(frameWindow),
		now:      time.Now,
	}, nil
}

// SetPaused stops or resumes point movement. Paused frames still draw.
func (c *Cycle) SetPaused(p bool) { c.paused = p }

func (c *Cycle) Paused() bool { return c.paused }

// Neighbors returns the mapping computed by the last frame.
func (c *Cycle) Neighbors() proximity.Neighbors { return c.near }

// Field returns the simulated point collection.
func (c *Cycle) Field() *field.Field { return c.field }

// Frame renders one frame and advances the simulation by one tick.
func (c *Cycle) Frame() Stats {
	c.times.Add(c.now())

	vw, vh := c.viewport.Size()
	c.surface.SetDimensions(vw, vh)
	w, h := c.surface.Dimensions()
	c.surface.Clear(Rect{W: w, H: h})

	// Neighbours come from positions as they stood before anyone moved.
	c.snapshot = c.field.Positions(c.snapshot)
	c.near = c.index.Recompute(c.snapshot)

	drawn := 0
	for i := range c.field.Len() {
		p := c.field.Point(i)
		p.Opacity = c.tracker.Opacity(p.Pos)

		c.surface.DrawCircle(p.Pos.X, p.Pos.Y, p.Radius, Paint{Color: c.palette.Point, Alpha: p.Opacity})

		if c.tracker.ShowsConnections(p.Opacity) {
			line := Paint{Color: c.palette.Line, Alpha: p.Opacity}
			for _, j := range c.near[i] {
				// Earlier neighbours have already moved this frame; the
				// line follows them.
				q := c.field.Point(j).Pos
				width := 1.5 - field.Distance(p.Pos, q)/c.cfg.MinDist
				c.surface.DrawLine(p.Pos.X, p.Pos.Y, q.X, q.Y, width, line)
				drawn++
			}
		}

		if !c.paused {
			p.Advance(w, h)
		}
	}

	c.frames++
	return Stats{
		Frame:   c.frames,
		Width:   w,
		Height:  h,
		Pointer: c.tracker.Pointer(),
		Points:  c.field.Len(),
		Links:   c.near.Links(),
		Drawn:   drawn,
		FPS:     c.times.FPS(),
		Paused:  c.paused,
		Config:  c.cfg,
	}
}

// Run renders frames until ctx is done, the scheduler fails, or onFrame
// returns an error. Cancellation and ErrStop end the loop without error.
func (c *Cycle) Run(ctx context.Context, sched Scheduler, onFrame func(Stats) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		stats := c.Frame()
		if onFrame != nil {
			if err := onFrame(stats); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}

		if err := sched.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("render: wait for frame: %w", err)
		}
	}
}
