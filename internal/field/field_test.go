package field

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/olivier-w/constellate/internal/config"
)

func TestDistanceIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 100 {
		a := Vec{X: rng.Float64()*400 - 100, Y: rng.Float64()*400 - 100}
		b := Vec{X: rng.Float64()*400 - 100, Y: rng.Float64()*400 - 100}
		if Distance(a, b) != Distance(b, a) {
			t.Fatalf("expected symmetric distance for %v %v", a, b)
		}
	}
	if got := Distance(Vec{0, 0}, Vec{3, 4}); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestNewSpawnsFourByFourGrid(t *testing.T) {
	cfg := config.Default()
	f, err := New(200, 200, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Len() != 16 {
		t.Fatalf("expected 16 points, got %d", f.Len())
	}

	i := 0
	for x := 40.0; x <= 160; x += 40 {
		for y := 40.0; y <= 160; y += 40 {
			got := f.Point(i).Anchor
			if got != (Vec{X: x, Y: y}) {
				t.Fatalf("point %d: expected anchor (%v,%v), got %v", i, x, y, got)
			}
			i++
		}
	}
}

func TestNewPointStaysInJitterBox(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(3))
	anchor := Vec{X: 120, Y: 80}
	for range 500 {
		p := NewPoint(anchor, cfg, rng)
		if p.Pos.X < anchor.X-cfg.Boundary || p.Pos.X >= anchor.X {
			t.Fatalf("x %v outside [%v,%v)", p.Pos.X, anchor.X-cfg.Boundary, anchor.X)
		}
		if p.Pos.Y < anchor.Y-cfg.Boundary || p.Pos.Y >= anchor.Y {
			t.Fatalf("y %v outside [%v,%v)", p.Pos.Y, anchor.Y-cfg.Boundary, anchor.Y)
		}
		if p.Vel.X < -1 || p.Vel.X >= cfg.VMX-1 {
			t.Fatalf("vx %v outside [-1,%v)", p.Vel.X, cfg.VMX-1)
		}
		if p.Radius < 0 || p.Radius >= cfg.RM {
			t.Fatalf("radius %v outside [0,%v)", p.Radius, cfg.RM)
		}
		if p.Opacity != 0.15 {
			t.Fatalf("expected base opacity 0.15, got %v", p.Opacity)
		}
		if p.Anchor != anchor {
			t.Fatalf("expected anchor kept, got %v", p.Anchor)
		}
	}
}

func TestNewRejectsOversizedGrid(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPoints = 15
	_, err := New(200, 200, cfg, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrTooManyPoints) {
		t.Fatalf("expected ErrTooManyPoints, got %v", err)
	}
}

func TestGridSizeMatchesAnchors(t *testing.T) {
	for _, tc := range []struct{ w, h, m float64 }{
		{200, 200, 40}, {201, 199, 40}, {40, 40, 40}, {1920, 1080, 40}, {0, 0, 10},
	} {
		if got, want := GridSize(tc.w, tc.h, tc.m), len(Anchors(tc.w, tc.h, tc.m)); got != want {
			t.Fatalf("%vx%v@%v: GridSize %d, Anchors %d", tc.w, tc.h, tc.m, got, want)
		}
	}
}

func TestAdvanceReflectsThenMoves(t *testing.T) {
	const w, h = 200.0, 100.0
	p := Point{Pos: Vec{X: w + 1, Y: 50}, Vel: Vec{X: 2, Y: 0}}
	p.Advance(w, h)
	if p.Vel.X != -2 {
		t.Fatalf("expected vx -2, got %v", p.Vel.X)
	}
	if p.Pos.X != w-1 {
		t.Fatalf("expected x %v, got %v", w-1, p.Pos.X)
	}
}

func TestAdvanceDoesNotClamp(t *testing.T) {
	p := Point{Pos: Vec{X: 1, Y: 1}, Vel: Vec{X: -5, Y: -3}}
	p.Advance(100, 100)
	if p.Pos.X != -4 || p.Pos.Y != -2 {
		t.Fatalf("expected overshoot to (-4,-2), got %v", p.Pos)
	}
	if p.Vel.X != -5 || p.Vel.Y != -3 {
		t.Fatalf("expected velocity unchanged inside bounds, got %v", p.Vel)
	}

	p.Advance(100, 100)
	if p.Vel.X != 5 || p.Vel.Y != 3 {
		t.Fatalf("expected reflection on the next tick, got %v", p.Vel)
	}
	if p.Pos.X != 1 || p.Pos.Y != 1 {
		t.Fatalf("expected (1,1) after reflection, got %v", p.Pos)
	}
}

func TestFieldAdvanceMovesEveryPoint(t *testing.T) {
	f := FromPoints([]Point{
		{Pos: Vec{10, 10}, Vel: Vec{1, 1}},
		{Pos: Vec{20, 20}, Vel: Vec{-1, 0.5}},
	})
	f.Advance(100, 100)
	if got := f.Point(0).Pos; got != (Vec{11, 11}) {
		t.Fatalf("expected (11,11), got %v", got)
	}
	if got := f.Point(1).Pos; got != (Vec{19, 20.5}) {
		t.Fatalf("expected (19,20.5), got %v", got)
	}
	pos := f.Positions(nil)
	if len(pos) != 2 || pos[1] != (Vec{19, 20.5}) {
		t.Fatalf("unexpected positions %v", pos)
	}
}
