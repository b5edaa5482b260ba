package render

import "github.com/lucasb-eyer/go-colorful"

// Paint is a colour with an alpha. Alpha is not clamped here; opacity can
// exceed 1 near the pointer and surfaces clamp when they composite.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// Rect is an axis-aligned region in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Surface is the 2D rasterizer the cycle draws on.
type Surface interface {
	Clear(r Rect)
	DrawCircle(x, y, radius float64, p Paint)
	DrawLine(x1, y1, x2, y2, width float64, p Paint)
	Dimensions() (width, height float64)
	SetDimensions(width, height float64)
}

// Viewport reports the host's current drawable size.
type Viewport interface {
	Size() (width, height float64)
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() (float64, float64)

func (f ViewportFunc) Size() (float64, float64) { return f() }
