package canvas

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// DetectProfile returns the colour profile of the current terminal,
// honouring NO_COLOR and CLICOLOR_FORCE.
func DetectProfile() termenv.Profile {
	return termenv.EnvColorProfile()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func rgbKey(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ansiState writes SGR sequences only when the colour actually changes.
type ansiState struct {
	profile termenv.Profile
	current uint32
	seqs    map[uint32]string
}

func newANSIState(p termenv.Profile) ansiState {
	return ansiState{profile: p, current: ^uint32(0), seqs: make(map[uint32]string)}
}

func (s *ansiState) enabled() bool { return s.profile != termenv.Ascii }

func (s *ansiState) set(sb *strings.Builder, c colorful.Color) {
	if !s.enabled() {
		return
	}
	key := rgbKey(c)
	if key == s.current {
		return
	}
	seq, ok := s.seqs[key]
	if !ok {
		seq = termenv.CSI + s.profile.FromColor(c.Clamped()).Sequence(false) + "m"
		s.seqs[key] = seq
	}
	sb.WriteString(seq)
	s.current = key
}

func (s *ansiState) background(sb *strings.Builder, c colorful.Color) {
	if !s.enabled() {
		return
	}
	sb.WriteString(termenv.CSI + s.profile.FromColor(c.Clamped()).Sequence(true) + "m")
}

func (s *ansiState) reset(sb *strings.Builder) {
	if !s.enabled() {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.current = ^uint32(0)
}
