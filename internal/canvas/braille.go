// Package canvas implements a terminal drawing surface out of Unicode
// Braille characters.
package canvas

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/olivier-w/constellate/internal/render"
)

// Each terminal cell holds a 2x4 grid of dots.
const (
	DotsPerCol = 2
	DotsPerRow = 4
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Canvas is a render.Surface measured in dots. A cell takes the colour of the
// most opaque paint that touched it this frame, composited over the
// background.
type Canvas struct {
	cols, rows int
	bg         colorful.Color
	profile    termenv.Profile

	dots   []uint8
	alpha  []float64
	colors []colorful.Color
}

var _ render.Surface = (*Canvas)(nil)

// New creates an empty canvas. Size it with SetCells or SetDimensions.
func New(bg colorful.Color, profile termenv.Profile) *Canvas {
	return &Canvas{bg: bg, profile: profile}
}

// SetCells resizes the canvas to cols x rows terminal cells.
func (c *Canvas) SetCells(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols, c.rows = cols, rows
	n := cols * rows
	c.dots = make([]uint8, n)
	c.alpha = make([]float64, n)
	c.colors = make([]colorful.Color, n)
}

// Cells returns the size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

// SetDimensions resizes to the largest whole number of cells that fits in
// width x height dots.
func (c *Canvas) SetDimensions(width, height float64) {
	c.SetCells(int(width)/DotsPerCol, int(height)/DotsPerRow)
}

func (c *Canvas) Dimensions() (float64, float64) {
	return float64(c.cols * DotsPerCol), float64(c.rows * DotsPerRow)
}

// Clear blanks every cell that r touches.
func (c *Canvas) Clear(r render.Rect) {
	c0 := max(int(math.Floor(r.X/DotsPerCol)), 0)
	r0 := max(int(math.Floor(r.Y/DotsPerRow)), 0)
	c1 := min(int(math.Ceil((r.X+r.W)/DotsPerCol)), c.cols)
	r1 := min(int(math.Ceil((r.Y+r.H)/DotsPerRow)), c.rows)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			i := row*c.cols + col
			c.dots[i] = 0
			c.alpha[i] = 0
		}
	}
}

// DrawCircle fills every dot whose centre lies within radius of (x, y).
// Circles smaller than a dot still light the dot under their centre.
func (c *Canvas) DrawCircle(x, y, radius float64, p render.Paint) {
	a := clamp01(p.Alpha)
	if a <= 0 {
		return
	}
	c.set(int(math.Floor(x)), int(math.Floor(y)), p.Color, a)

	r2 := radius * radius
	for dy := int(math.Floor(y - radius)); dy <= int(math.Ceil(y+radius)); dy++ {
		for dx := int(math.Floor(x - radius)); dx <= int(math.Ceil(x+radius)); dx++ {
			ox := float64(dx) + 0.5 - x
			oy := float64(dy) + 0.5 - y
			if ox*ox+oy*oy <= r2 {
				c.set(dx, dy, p.Color, a)
			}
		}
	}
}

// DrawLine plots a one-dot Bresenham line. Dots are binary, so width only
// matters when it is not positive.
func (c *Canvas) DrawLine(x1, y1, x2, y2, width float64, p render.Paint) {
	a := clamp01(p.Alpha)
	if a <= 0 || width <= 0 {
		return
	}
	if !finite(x1, y1, x2, y2) {
		return
	}

	ax, ay := int(math.Floor(x1)), int(math.Floor(y1))
	bx, by := int(math.Floor(x2)), int(math.Floor(y2))

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(ax, ay, p.Color, a)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

func (c *Canvas) set(x, y int, col colorful.Color, a float64) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/DotsPerCol, y/DotsPerRow
	if cx >= c.cols || cy >= c.rows {
		return
	}
	i := cy*c.cols + cx
	c.dots[i] |= 1 << brailleBits[x%DotsPerCol][y%DotsPerRow]
	if a > c.alpha[i] {
		c.alpha[i] = a
		c.colors[i] = col
	}
}

// Dot reports whether the dot at (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 || x/DotsPerCol >= c.cols || y/DotsPerRow >= c.rows {
		return false
	}
	i := (y/DotsPerRow)*c.cols + x/DotsPerCol
	return c.dots[i]&(1<<brailleBits[x%DotsPerCol][y%DotsPerRow]) != 0
}

// Lit returns the number of lit dots.
func (c *Canvas) Lit() int {
	n := 0
	for _, d := range c.dots {
		for d != 0 {
			n += int(d & 1)
			d >>= 1
		}
	}
	return n
}

// Render returns the canvas as rows of Braille characters with colour
// sequences for the terminal profile.
func (c *Canvas) Render() string {
	var out strings.Builder
	out.Grow(c.rows * (c.cols*3 + 16))
	ansi := newANSIState(c.profile)
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		ansi.background(&out, c.bg)
		for col := range c.cols {
			i := row*c.cols + col
			if c.dots[i] == 0 {
				out.WriteByte(' ')
				continue
			}
			ansi.set(&out, c.bg.BlendRgb(c.colors[i], c.alpha[i]))
			out.WriteRune(rune(0x2800 + int(c.dots[i])))
		}
		ansi.reset(&out)
	}
	return out.String()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
