package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// MinMargin is the smallest grid spacing accepted. Smaller values spawn so
// many points that the quadratic neighbour pass stalls the frame loop.
const MinMargin = 10

// Mode selects how the pointer affects connection visibility.
type Mode int

const (
	// Ambient draws every point's connections regardless of opacity.
	Ambient Mode = iota
	// Pointer draws connections only for points lit up by the pointer.
	Pointer
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case Pointer:
		return "pointer"
	default:
		return "ambient"
	}
}

// ParseMode parses "ambient" or "pointer".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ambient", "":
		return Ambient, nil
	case "pointer", "mouse":
		return Pointer, nil
	}
	return Ambient, fmt.Errorf("%w: unknown mode %q (want ambient or pointer)", ErrInvalid, s)
}

// Config holds every tunable of the field. It is built once before the frame
// loop starts and passed by value afterwards.
type Config struct {
	Mode Mode

	Background string
	PointColor string
	LineColor  string

	Margin   float64 // grid spacing between anchors
	Boundary float64 // spawn jitter box size
	VMX      float64 // velocity multipliers
	VMY      float64
	RM       float64 // radius multiplier

	MinDist     float64 // connection threshold
	MaxNear     int     // neighbour cap per point
	MouseRadius float64 // pointer influence radius

	BaseOpacity       float64
	ConnectionOpacity float64 // pointer mode shows links above this

	// DotScale converts the pixel lengths above into braille dots for the
	// terminal hosts. A dot is roughly four pixels on a typical terminal.
	DotScale float64

	FPS       int
	MaxPoints int
	Seed      int64
	Debug     bool
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Mode:              Ambient,
		Background:        "#000000",
		PointColor:        "#ffffff",
		LineColor:         "#5cc1d3",
		Margin:            40,
		Boundary:          50,
		VMX:               1.7,
		VMY:               1.7,
		RM:                2.5,
		MinDist:           50,
		MaxNear:           5,
		MouseRadius:       500,
		BaseOpacity:       0.15,
		ConnectionOpacity: 0.3,
		DotScale:          0.25,
		FPS:               60,
		MaxPoints:         20000,
	}
}

// RegisterFlags binds the configuration fields to fs. Defaults are taken from
// the receiver's current values.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("mode", "interaction mode: ambient or pointer (default "+c.Mode.String()+")", func(s string) error {
		m, err := ParseMode(s)
		if err != nil {
			return err
		}
		c.Mode = m
		return nil
	})
	fs.StringVar(&c.Background, "bg", c.Background, "background colour (hex)")
	fs.StringVar(&c.PointColor, "point-color", c.PointColor, "point colour (hex)")
	fs.StringVar(&c.LineColor, "line-color", c.LineColor, "connection colour (hex)")
	fs.Float64Var(&c.Margin, "margin", c.Margin, "grid spacing between points; lower means more points")
	fs.Float64Var(&c.Boundary, "boundary", c.Boundary, "spawn jitter around each grid anchor")
	fs.Float64Var(&c.VMX, "vmx", c.VMX, "horizontal velocity multiplier")
	fs.Float64Var(&c.VMY, "vmy", c.VMY, "vertical velocity multiplier")
	fs.Float64Var(&c.RM, "rm", c.RM, "radius multiplier")
	fs.Float64Var(&c.MinDist, "min-dist", c.MinDist, "maximum distance for a connection")
	fs.IntVar(&c.MaxNear, "max-near", c.MaxNear, "connection limit per point")
	fs.Float64Var(&c.MouseRadius, "mouse-radius", c.MouseRadius, "pointer influence radius")
	fs.Float64Var(&c.DotScale, "dot-scale", c.DotScale, "braille dots per pixel for lengths in the terminal")
	fs.IntVar(&c.FPS, "fps", c.FPS, "target frames per second")
	fs.IntVar(&c.MaxPoints, "max-points", c.MaxPoints, "refuse to spawn more points than this")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one from the clock)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show the diagnostic overlay")
}

// Validate reports every degenerate value at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	floats := []struct {
		name string
		v    float64
	}{
		{"margin", c.Margin},
		{"boundary", c.Boundary},
		{"vmx", c.VMX},
		{"vmy", c.VMY},
		{"rm", c.RM},
		{"min-dist", c.MinDist},
		{"mouse-radius", c.MouseRadius},
		{"base opacity", c.BaseOpacity},
		{"connection opacity", c.ConnectionOpacity},
		{"dot-scale", c.DotScale},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			bad("%s must be finite, got %v", f.name, f.v)
		}
	}

	if c.Margin <= 0 {
		bad("margin must be positive, got %v", c.Margin)
	} else if c.Margin < MinMargin {
		bad("margin %v is below %d and would spawn too many points", c.Margin, MinMargin)
	}
	if c.Boundary < 0 {
		bad("boundary must not be negative, got %v", c.Boundary)
	}
	if c.RM < 0 {
		bad("rm must not be negative, got %v", c.RM)
	}
	if c.MinDist <= 0 {
		bad("min-dist must be positive, got %v", c.MinDist)
	}
	if c.MaxNear <= 0 {
		bad("max-near must be positive, got %d", c.MaxNear)
	}
	if c.MouseRadius <= 0 {
		bad("mouse-radius must be positive, got %v", c.MouseRadius)
	}
	if c.DotScale <= 0 {
		bad("dot-scale must be positive, got %v", c.DotScale)
	}
	if c.FPS <= 0 {
		bad("fps must be positive, got %d", c.FPS)
	}
	if c.MaxPoints <= 0 {
		bad("max-points must be positive, got %d", c.MaxPoints)
	}
	if c.Mode != Ambient && c.Mode != Pointer {
		bad("unknown mode %d", int(c.Mode))
	}
	for _, col := range []struct{ name, hex string }{
		{"bg", c.Background},
		{"point-color", c.PointColor},
		{"line-color", c.LineColor},
	} {
		if _, err := colorful.Hex(col.hex); err != nil {
			bad("%s %q is not a hex colour", col.name, col.hex)
		}
	}

	return errors.Join(errs...)
}

// Scaled returns a copy with the margin, boundary, radius multiplier,
// connection threshold and pointer radius multiplied by f. Velocities keep
// their -1 offset and are not scaled. The copy is not revalidated against
// MinMargin; MaxPoints still bounds the spawn.
func (c Config) Scaled(f float64) Config {
	c.Margin *= f
	c.Boundary *= f
	c.RM *= f
	c.MinDist *= f
	c.MouseRadius *= f
	c.DotScale = 1
	return c
}

// Palette is the parsed set of colours.
type Palette struct {
	Background colorful.Color
	Point      colorful.Color
	Line       colorful.Color
}

// Palette parses the configured colours. Call after Validate.
func (c Config) Palette() (Palette, error) {
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return Palette{}, fmt.Errorf("parse bg: %w", err)
	}
	pt, err := colorful.Hex(c.PointColor)
	if err != nil {
		return Palette{}, fmt.Errorf("parse point-color: %w", err)
	}
	ln, err := colorful.Hex(c.LineColor)
	if err != nil {
		return Palette{}, fmt.Errorf("parse line-color: %w", err)
	}
	return Palette{Background: bg, Point: pt, Line: ln}, nil
}
