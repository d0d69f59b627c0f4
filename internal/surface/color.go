package surface

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/bandscope/internal/bands"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI16
	colorANSI256
	colorTrueColor
)

var (
	profileOnce sync.Once
	profile     colorProfile
	seqCache    sync.Map
)

func currentColorProfile() colorProfile {
	profileOnce.Do(func() {
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			profile = colorNone
			return
		}
		term := strings.ToLower(os.Getenv("TERM"))
		colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
		switch {
		case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
			profile = colorTrueColor
		case strings.Contains(term, "256color"):
			profile = colorANSI256
		case term == "", term == "dumb":
			profile = colorNone
		default:
			profile = colorANSI16
		}
	})
	return profile
}

// Palette holds the stroke colours of a frame.
type Palette struct {
	Bands      [bands.Count]colorful.Color
	Axes       colorful.Color
	Background colorful.Color
}

// PaletteHex is a Palette spelled as "#rrggbb" strings.
type PaletteHex struct {
	Low, Mid, High string
	Axes           string
	Background     string
}

// DefaultPaletteHex returns the stock colours.
func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		Low:        "#e5533d",
		Mid:        "#f2c94c",
		High:       "#56ccf2",
		Axes:       "#5c5c5c",
		Background: "#101014",
	}
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	p, _ := DefaultPaletteHex().Parse()
	return p
}

// Parse converts every hex colour, reporting the first one that is invalid.
func (h PaletteHex) Parse() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"low", h.Low, &p.Bands[bands.Low]},
		{"mid", h.Mid, &p.Bands[bands.Mid]},
		{"high", h.High, &p.Bands[bands.High]},
		{"axes", h.Axes, &p.Axes},
		{"background", h.Background, &p.Background},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s colour %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}

type ansiState struct {
	profile colorProfile
	current uint32
}

func newANSIState(p colorProfile) ansiState {
	return ansiState{profile: p, current: ^uint32(0)}
}

func (s *ansiState) set(sb *strings.Builder, c colorful.Color) {
	if s.profile == colorNone {
		return
	}
	r, g, b := c.RGB255()
	key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if key == s.current {
		return
	}
	sb.WriteString(colorSequence(s.profile, r, g, b))
	s.current = key
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == colorNone || s.current == ^uint32(0) {
		return
	}
	sb.WriteString("\x1b[0m")
	s.current = ^uint32(0)
}

var ansi16 = [8][3]uint8{
	{0, 0, 0},
	{205, 49, 49},
	{13, 188, 121},
	{229, 229, 16},
	{36, 114, 200},
	{188, 63, 188},
	{17, 168, 205},
	{229, 229, 229},
}

func colorSequence(p colorProfile, r, g, b uint8) string {
	key := uint32(p)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	switch p {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	case colorANSI256:
		idx := 16 + 36*(int(r)*5/255) + 6*(int(g)*5/255) + int(b)*5/255
		seq = fmt.Sprintf("\x1b[38;5;%dm", idx)
	case colorANSI16:
		best := 0
		bestDist := math.MaxFloat64
		for i, c := range ansi16 {
			dr := float64(r) - float64(c[0])
			dg := float64(g) - float64(c[1])
			db := float64(b) - float64(c[2])
			if d := dr*dr + dg*dg + db*db; d < bestDist {
				bestDist = d
				best = i
			}
		}
		seq = fmt.Sprintf("\x1b[%dm", 30+best)
	}

	seqCache.Store(key, seq)
	return seq
}
