package ui

import (
	"strings"

	"github.com/olivier-w/constellate/internal/render"
)

// overlayWidth is the total width of the debug panel including its border.
const overlayWidth = 22

// renderOverlay draws the debug panel in at most height rows, dropping the
// lines that do not fit.
func renderOverlay(stats render.Stats, height int) string {
	lines := stats.Lines()
	room := height - 2 // border
	if room <= 0 {
		return ""
	}
	if len(lines) > room {
		lines = lines[:room]
	}
	for i, l := range lines {
		label, value, ok := strings.Cut(l, ": ")
		if !ok {
			lines[i] = labelStyle.Render(l)
			continue
		}
		lines[i] = labelStyle.Render(label+":") + " " + value
	}
	return overlayStyle.Width(overlayWidth - 2).Render(strings.Join(lines, "\n"))
}

// fitLines pads or cuts s to exactly height lines.
func fitLines(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) >= height {
		return strings.Join(lines[:height], "\n")
	}
	return s + strings.Repeat("\n", height-len(lines))
}
