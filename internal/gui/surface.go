package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/constellate/internal/render"
)

// screenSurface draws on the ebiten screen image handed to Draw.
type screenSurface struct {
	img  *ebiten.Image
	w, h float64
	bg   color.NRGBA
}

var _ render.Surface = (*screenSurface)(nil)

func newScreenSurface(bg colorful.Color) *screenSurface {
	return &screenSurface{bg: toNRGBA(render.Paint{Color: bg, Alpha: 1})}
}

func (s *screenSurface) Clear(r render.Rect) {
	if s.img == nil {
		return
	}
	vector.DrawFilledRect(s.img, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), s.bg, false)
}

func (s *screenSurface) DrawCircle(x, y, radius float64, p render.Paint) {
	if s.img == nil || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), toNRGBA(p), true)
}

func (s *screenSurface) DrawLine(x1, y1, x2, y2, width float64, p render.Paint) {
	if s.img == nil || width <= 0 {
		return
	}
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), toNRGBA(p), true)
}

func (s *screenSurface) Dimensions() (float64, float64) { return s.w, s.h }

func (s *screenSurface) SetDimensions(w, h float64) { s.w, s.h = w, h }

// toNRGBA clamps the paint alpha into a straight-alpha colour.
func toNRGBA(p render.Paint) color.NRGBA {
	r, g, b := p.Color.Clamped().RGB255()
	a := p.Alpha
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}
