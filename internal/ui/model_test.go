package ui

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/constellate/internal/config"
	"github.com/olivier-w/constellate/internal/field"
)

func newTestModel(t *testing.T, cfg config.Config) Model {
	t.Helper()
	m, err := New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("expected ui.Model, got %T", next)
	}
	return nm, cmd
}

func TestWindowSizeSpawnsFieldAndSchedulesFrame(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if m.cycle == nil {
		t.Fatal("expected cycle to start on first resize")
	}
	if cmd == nil {
		t.Fatal("expected a frame command")
	}
	// 80x23 cells is 160x92 dots; the 40px margin becomes 10 dots, giving
	// anchors at x 10..150 and y 10..90.
	if got := m.cycle.Field().Len(); got != 135 {
		t.Fatalf("expected 135 points, got %d", got)
	}
	if got := m.tracker.Pointer(); got != (field.Vec{X: 80, Y: 46}) {
		t.Fatalf("expected pointer to start at the centre, got %v", got)
	}
}

func TestSecondResizeKeepsPopulation(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	cycle := m.cycle
	population := cycle.Field().Len()

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 200, Height: 60})
	if m.cycle != cycle {
		t.Fatal("expected the same cycle after resize")
	}
	if cmd != nil {
		t.Fatal("expected no extra frame command on resize")
	}
	if got := m.cycle.Field().Len(); got != population {
		t.Fatalf("expected population %d unchanged, got %d", population, got)
	}
}

func TestFrameMsgRendersCanvas(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, cmd := update(t, m, frameMsg(time.Now()))

	if cmd == nil {
		t.Fatal("expected next frame to be requested")
	}
	if m.stats.Frame != 1 {
		t.Fatalf("expected frame 1, got %d", m.stats.Frame)
	}
	if got := strings.Count(m.frame, "\n") + 1; got != 23 {
		t.Fatalf("expected 23 canvas rows, got %d", got)
	}
}

func TestMouseMovesPointer(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	if got := m.tracker.Pointer(); got != (field.Vec{X: 21, Y: 22}) {
		t.Fatalf("expected pointer at dot (21,22), got %v", got)
	}
}

func TestQuitKeyStops(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if !m.quitting {
		t.Fatal("expected quitting state")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view when quitting, got %q", m.View())
	}
	if _, cmd := update(t, m, frameMsg(time.Now())); cmd != nil {
		t.Fatal("expected no further frames after quitting")
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.cycle.Paused() {
		t.Fatal("expected paused after space")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.cycle.Paused() {
		t.Fatal("expected resumed after second space")
	}
}

func TestOverlayShrinksCanvas(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = true
	m := newTestModel(t, cfg)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, frameMsg(time.Now()))

	if m.view.cols != 80-overlayWidth {
		t.Fatalf("expected %d canvas columns, got %d", 80-overlayWidth, m.view.cols)
	}
	if view := m.View(); !strings.Contains(view, "Points:") {
		t.Fatalf("expected overlay in view, got %q", view)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if m.view.cols != 80 {
		t.Fatalf("expected full width after hiding overlay, got %d", m.view.cols)
	}
}

func TestTooManyPointsStopsProgram(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPoints = 1
	m := newTestModel(t, cfg)
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if !errors.Is(m.Err(), field.ErrTooManyPoints) {
		t.Fatalf("expected ErrTooManyPoints, got %v", m.Err())
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewPadsToWindowHeight(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, frameMsg(time.Now()))

	view := m.View()
	if lipgloss.Height(view) != 24 {
		t.Fatalf("expected view height 24, got %d", lipgloss.Height(view))
	}
	if !strings.Contains(view, "quit") {
		t.Fatalf("expected help line in view, got %q", view)
	}
}

func TestPointerMarkerEasesTowardsTarget(t *testing.T) {
	mk := newPointerMarker(60)
	first := mk.step(field.Vec{X: 10, Y: 10})
	if first != (field.Vec{X: 10, Y: 10}) {
		t.Fatalf("expected marker to start on the pointer, got %v", first)
	}
	next := mk.step(field.Vec{X: 100, Y: 10})
	if next.X <= 10 || next.X >= 100 {
		t.Fatalf("expected marker between old and new pointer, got %v", next)
	}
}

func TestPointerModeHidesFarConnections(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = config.Pointer
	m := newTestModel(t, cfg)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 60})
	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	m, _ = update(t, m, frameMsg(time.Now()))

	st := m.stats
	if st.Links == 0 {
		t.Fatal("expected neighbours on a 200x60 terminal")
	}
	if st.Drawn == 0 {
		t.Fatalf("expected links near the pointer drawn, got 0 of %d", st.Links)
	}
	if st.Drawn >= st.Links {
		t.Fatalf("expected far links hidden, drew %d of %d", st.Drawn, st.Links)
	}
	if st.Config.MouseRadius != 125 {
		t.Fatalf("expected pointer radius in dots, got %v", st.Config.MouseRadius)
	}
}

func TestOverlayFitsShortTerminal(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = true
	m := newTestModel(t, cfg)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	m, _ = update(t, m, frameMsg(time.Now()))

	view := m.View()
	if got := lipgloss.Height(view); got != 10 {
		t.Fatalf("expected view height 10, got %d", got)
	}
	if !strings.Contains(view, "W:") {
		t.Fatalf("expected first overlay lines kept, got %q", view)
	}
	if strings.Contains(view, "FPS:") {
		t.Fatalf("expected trailing overlay lines dropped, got %q", view)
	}
}

func TestFitLines(t *testing.T) {
	if got := fitLines("a\nb", 4); got != "a\nb\n\n" {
		t.Fatalf("expected padding to 4 lines, got %q", got)
	}
	if got := fitLines("a\nb\nc", 2); got != "a\nb" {
		t.Fatalf("expected cut to 2 lines, got %q", got)
	}
}

func TestPointerModeFrameDrawsMarker(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = config.Pointer
	m := newTestModel(t, cfg)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	m, _ = update(t, m, frameMsg(time.Now()))

	if !m.marker.placed {
		t.Fatal("expected marker placed on the first pointer-mode frame")
	}
	if m.marker.pos != (field.Vec{X: 21, Y: 22}) {
		t.Fatalf("expected marker on the pointer, got %v", m.marker.pos)
	}
	if !m.canvas.Dot(21, 22) {
		t.Fatal("expected marker dot lit")
	}
}

func TestAmbientModeSkipsMarker(t *testing.T) {
	m := newTestModel(t, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, frameMsg(time.Now()))

	if m.marker.placed {
		t.Fatal("expected no marker in ambient mode")
	}
}
