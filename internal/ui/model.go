package ui

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/constellate/internal/canvas"
	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/field"
	"github.com/olivier-w/constellate/internal/interact"
	"github.com/olivier-w/constellate/internal/render"
)

// cellViewport is the canvas area in terminal cells, reported in dots.
// It is shared by pointer between copies of Model.
type cellViewport struct {
	cols, rows int
}

func (v *cellViewport) Size() (float64, float64) {
	return float64(v.cols * canvas.DotsPerCol), float64(v.rows * canvas.DotsPerRow)
}

// Model is the Bubbletea model for the terminal constellation.
type Model struct {
	cfg     config.Config
	rng     *rand.Rand
	palette config.Palette

	canvas  *canvas.Canvas
	view    *cellViewport
	tracker *interact.Tracker
	cycle   *render.Cycle
	marker  *pointerMarker

	interval time.Duration
	stats    render.Stats
	frame    string

	width       int
	height      int
	showOverlay bool
	keys        keyMap
	help        help.Model
	quitting    bool
	err         error
}

// New creates a Model. cfg must already be validated; its lengths are
// converted to braille dots and the field is spawned once the terminal
// reports its size.
func New(cfg config.Config, rng *rand.Rand) (Model, error) {
	cfg = cfg.Scaled(cfg.DotScale)
	pal, err := cfg.Palette()
	if err != nil {
		return Model{}, fmt.Errorf("ui: %w", err)
	}
	marker := newPointerMarker(cfg.FPS)
	return Model{
		cfg:         cfg,
		rng:         rng,
		palette:     pal,
		canvas:      canvas.New(pal.Background, canvas.DetectProfile()),
		view:        &cellViewport{},
		marker:      &marker,
		interval:    render.FrameInterval(cfg.FPS),
		showOverlay: cfg.Debug,
		keys:        defaultKeys(),
		help:        help.New(),
	}, nil
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("constellate")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(m.keys, msg) {
			m.quitting = true
			log.Printf("quit after %d frames", m.stats.Frame)
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		switch {
		case key.Matches(msg, m.keys.Pause):
			if m.cycle != nil {
				m.cycle.SetPaused(!m.cycle.Paused())
			}
		case key.Matches(msg, m.keys.Overlay):
			m.showOverlay = !m.showOverlay
			m.layout()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		log.Printf("resize %dx%d cells, canvas %dx%d", msg.Width, msg.Height, m.view.cols, m.view.rows)
		if m.cycle == nil {
			if err := m.start(); err != nil {
				m.err = err
				m.quitting = true
				return m, tea.Quit
			}
			return m, frameCmd(m.interval)
		}
		return m, nil

	case tea.MouseMsg:
		if m.tracker != nil {
			x, y := cellToDot(msg.X, msg.Y)
			m.tracker.SetPointer(x, y)
		}
		return m, nil

	case frameMsg:
		if m.cycle == nil || m.quitting {
			return m, nil
		}
		m.stats = m.cycle.Frame()
		if m.cfg.Mode == config.Pointer {
			m.drawMarker()
		}
		m.frame = m.canvas.Render()
		return m, frameCmd(m.interval)
	}

	return m, nil
}

// start spawns the field on the current canvas, as the first frame needs it.
func (m *Model) start() error {
	w, h := m.view.Size()
	f, err := field.New(w, h, m.cfg, m.rng)
	if err != nil {
		return err
	}
	m.tracker = interact.New(m.cfg, field.Vec{X: w / 2, Y: h / 2})
	cycle, err := render.NewCycle(m.cfg, f, m.tracker, m.canvas, m.view)
	if err != nil {
		return err
	}
	m.cycle = cycle
	log.Printf("spawned %d points on %.0fx%.0f dots, mode %s", f.Len(), w, h, m.cfg.Mode)
	return nil
}

// layout recomputes the canvas area from the window size.
func (m *Model) layout() {
	cols := m.width
	if m.showOverlay {
		cols -= overlayWidth
	}
	rows := m.height - lipgloss.Height(m.helpView())
	m.view.cols = max(cols, 1)
	m.view.rows = max(rows, 1)
}

func (m *Model) drawMarker() {
	p := m.marker.step(m.tracker.Pointer())
	m.canvas.DrawCircle(p.X, p.Y, 1.5, render.Paint{Color: m.palette.Line, Alpha: 1})
}

func (m Model) helpView() string {
	return helpStyle.Render(m.help.View(m.keys))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.cycle == nil {
		return "starting..."
	}

	body := m.frame
	if m.showOverlay {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, renderOverlay(m.stats, m.view.rows))
	}
	body = fitLines(body, m.view.rows)
	return fitLines(body+"\n"+m.helpView(), m.height)
}

// cellToDot maps a terminal cell to the dot at its centre.
func cellToDot(col, row int) (float64, float64) {
	return float64(col*canvas.DotsPerCol) + 1, float64(row*canvas.DotsPerRow) + 2
}
