package render

import (
	"context"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Scheduler paces the frame loop. Wait blocks until the next frame may run
// or ctx is done.
type Scheduler interface {
	Wait(ctx context.Context) error
}

// FrameInterval converts a frame rate into the delay between frames.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(harmonica.FPS(fps) * float64(time.Second))
}

// Ticker is a fixed-rate Scheduler.
type Ticker struct {
	t *time.Ticker
}

// NewTicker creates a Ticker firing fps times per second. Call Stop when done.
func NewTicker(fps int) *Ticker {
	return &Ticker{t: time.NewTicker(FrameInterval(fps))}
}

func (t *Ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

// Stop releases the underlying timer.
func (t *Ticker) Stop() { t.t.Stop() }
