package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/gui"
	"github.com/olivier-w/constellate/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and drives the selected host until it exits. Deferred
// cleanup such as closing the log runs on every return.
func run(args []string) error {
	cfg := config.Default()
	fs := flag.NewFlagSet("constellate", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	window := fs.Bool("window", false, "open a desktop window instead of drawing in the terminal")
	headless := fs.Bool("headless", false, "render without a terminal UI and print the last frame")
	frames := fs.Int("frames", 120, "frames to render in headless mode")
	size := fs.String("size", "80x24", "canvas size in terminal cells for headless mode")
	logPath := fs.String("log", "", "write a debug log to this file")
	fs.Parse(args)

	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("seed %d, mode %s, margin %v", seed, cfg.Mode, cfg.Margin)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *headless:
		err = runHeadless(ctx, os.Stdout, cfg, rng, *frames, *size)
	case *window:
		err = gui.Run(ctx, cfg, rng)
	default:
		err = runTerminal(cfg, rng)
	}
	if err != nil {
		log.Printf("exit: %v", err)
	}
	return err
}

func runTerminal(cfg config.Config, rng *rand.Rand) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal; use -headless or -window")
	}

	model, err := ui.New(cfg, rng)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(ui.Model); ok {
		return m.Err()
	}
	return nil
}

// setupLogging sends the standard logger to path, or discards it when path
// is empty since the terminal is owned by the UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "constellate")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}
