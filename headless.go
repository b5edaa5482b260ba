package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/olivier-w/constellate/internal/canvas"
	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/field"
	"github.com/olivier-w/constellate/internal/interact"
	"github.com/olivier-w/constellate/internal/render"
)

// parseSize parses "COLSxROWS".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (want COLSxROWS)", s)
	}
	cols, err := strconv.Atoi(ws)
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("invalid width in size %q", s)
	}
	rows, err := strconv.Atoi(hs)
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid height in size %q", s)
	}
	return cols, rows, nil
}

// runHeadless renders frames onto an off-screen braille canvas at the
// configured rate and writes the last one to w.
func runHeadless(ctx context.Context, w io.Writer, cfg config.Config, rng *rand.Rand, frames int, size string) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	cols, rows, err := parseSize(size)
	if err != nil {
		return err
	}
	cfg = cfg.Scaled(cfg.DotScale)
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}

	cv := canvas.New(pal.Background, canvas.DetectProfile())
	vp := render.ViewportFunc(func() (float64, float64) {
		return float64(cols * canvas.DotsPerCol), float64(rows * canvas.DotsPerRow)
	})
	width, height := vp.Size()

	f, err := field.New(width, height, cfg, rng)
	if err != nil {
		return err
	}
	tracker := interact.New(cfg, field.Vec{X: width / 2, Y: height / 2})
	cycle, err := render.NewCycle(cfg, f, tracker, cv, vp)
	if err != nil {
		return err
	}

	ticker := render.NewTicker(cfg.FPS)
	defer ticker.Stop()

	var last render.Stats
	err = cycle.Run(ctx, ticker, func(st render.Stats) error {
		last = st
		if st.Frame >= uint64(frames) {
			return render.ErrStop
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, cv.Render())
	if cfg.Debug {
		fmt.Fprintln(w, strings.Join(last.Lines(), "\n"))
	}
	return nil
}
