// Package gui shows the constellation in a desktop window using ebiten.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/field"
	"github.com/olivier-w/constellate/internal/interact"
	"github.com/olivier-w/constellate/internal/render"
)

const (
	windowWidth  = 1280
	windowHeight = 800

	overlayLineHeight = 13
)

// Game is the ebiten game wrapping one render cycle.
type Game struct {
	ctx context.Context
	cfg config.Config
	rng *rand.Rand

	surface *screenSurface
	tracker *interact.Tracker
	cycle   *render.Cycle
	stats   render.Stats

	outW, outH  int
	showOverlay bool
	err         error
}

// NewGame creates a game. The field is spawned on the first frame once the
// window size is known. Cancelling ctx closes the window.
func NewGame(ctx context.Context, cfg config.Config, rng *rand.Rand) (*Game, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("gui: %w", err)
	}
	return &Game{
		ctx:         ctx,
		cfg:         cfg,
		rng:         rng,
		surface:     newScreenSurface(pal.Background),
		showOverlay: cfg.Debug,
	}, nil
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, rng *rand.Rand) error {
	g, err := NewGame(ctx, cfg, rng)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("constellate")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return g.err
}

func (g *Game) Size() (float64, float64) {
	return float64(g.outW), float64(g.outH)
}

// start spawns the field once Layout has reported a size.
func (g *Game) start() error {
	if g.cycle != nil || g.outW <= 0 || g.outH <= 0 {
		return nil
	}
	w, h := g.Size()
	f, err := field.New(w, h, g.cfg, g.rng)
	if err != nil {
		return err
	}
	g.tracker = interact.New(g.cfg, field.Vec{X: w / 2, Y: h / 2})
	cycle, err := render.NewCycle(g.cfg, f, g.tracker, g.surface, g)
	if err != nil {
		return err
	}
	g.cycle = cycle
	log.Printf("spawned %d points on %dx%d, mode %s", f.Len(), g.outW, g.outH, g.cfg.Mode)
	return nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("quit after %d frames", g.stats.Frame)
		return ebiten.Termination
	}
	if err := g.start(); err != nil {
		g.err = err
		return ebiten.Termination
	}
	if g.cycle == nil {
		return nil
	}

	x, y := ebiten.CursorPosition()
	g.tracker.SetPointer(float64(x), float64(y))

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.cycle.SetPaused(!g.cycle.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.showOverlay = !g.showOverlay
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.cycle == nil {
		screen.Fill(g.surface.bg)
		return
	}
	g.surface.img = screen
	g.stats = g.cycle.Frame()
	g.surface.img = nil

	if g.showOverlay {
		drawOverlay(screen, g.stats)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outW || outsideHeight != g.outH {
		log.Printf("resize %dx%d", outsideWidth, outsideHeight)
	}
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func drawOverlay(screen *ebiten.Image, stats render.Stats) {
	lines := stats.Lines()
	h := float32(len(lines)*overlayLineHeight + 10)
	vector.DrawFilledRect(screen, 2, 5, 130, h, color.NRGBA{A: 204}, false)

	face := basicfont.Face7x13
	for i, l := range lines {
		text.Draw(screen, l, face, 10, 20+i*overlayLineHeight, color.White)
	}
}
