package render

import "time"

// FrameTimes is a circular buffer of recent frame start times.
type FrameTimes struct {
	buf  []time.Time
	size int
	w    int // write position
	len  int // current fill level
}

// NewFrameTimes creates a buffer remembering the last size frames.
func NewFrameTimes(size int) *FrameTimes {
	if size < 2 {
		size = 2
	}
	return &FrameTimes{
		buf:  make([]time.Time, size),
		size: size,
	}
}

// Add records a frame start, overwriting the oldest entry if full.
func (ft *FrameTimes) Add(t time.Time) {
	ft.buf[ft.w] = t
	ft.w = (ft.w + 1) % ft.size
	if ft.len < ft.size {
		ft.len++
	}
}

// FPS returns the average frame rate over the buffered window, or 0 until
// two frames have been seen.
func (ft *FrameTimes) FPS() float64 {
	if ft.len < 2 {
		return 0
	}
	newest := ft.buf[(ft.w-1+ft.size)%ft.size]
	oldest := ft.buf[(ft.w-ft.len+ft.size)%ft.size]
	span := newest.Sub(oldest).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(ft.len-1) / span
}

// Clear resets the buffer.
func (ft *FrameTimes) Clear() {
	ft.w = 0
	ft.len = 0
}
