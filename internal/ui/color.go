package ui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
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
	hexCache    sync.Map
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

var fallbackColor = colorful.Color{R: 1, G: 1, B: 1}

// parseHex parses a #rrggbb colour, falling back to white. Results are cached
// since reaction colours come from a small catalog.
func parseHex(s string) colorful.Color {
	if c, ok := hexCache.Load(s); ok {
		return c.(colorful.Color)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		c = fallbackColor
	}
	hexCache.Store(s, c)
	return c
}

// blend mixes c into base by amount, as if c were painted over base with that
// opacity.
func blend(base, c colorful.Color, amount float64) colorful.Color {
	return base.BlendRgb(c, clamp01(amount)).Clamped()
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

func colorKey(c colorful.Color) uint32 {
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ansiState tracks the colours last written so runs of equal cells share one
// escape sequence.
type ansiState struct {
	profile colorProfile
	fg      uint32
	bg      uint32
}

const noColor = ^uint32(0)

func newANSIState(p colorProfile) ansiState {
	return ansiState{profile: p, fg: noColor, bg: noColor}
}

func (s *ansiState) set(sb *strings.Builder, fg, bg colorful.Color) {
	if s.profile == colorNone {
		return
	}
	if key := colorKey(bg); key != s.bg {
		sb.WriteString(colorSequence(s.profile, bg, true))
		s.bg = key
	}
	if key := colorKey(fg); key != s.fg {
		sb.WriteString(colorSequence(s.profile, fg, false))
		s.fg = key
	}
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == colorNone || (s.fg == noColor && s.bg == noColor) {
		return
	}
	sb.WriteString("\x1b[0m")
	s.fg, s.bg = noColor, noColor
}

var ansi16Palette = []colorful.Color{
	{R: 0, G: 0, B: 0},
	{R: 205.0 / 255, G: 49.0 / 255, B: 49.0 / 255},
	{R: 13.0 / 255, G: 188.0 / 255, B: 121.0 / 255},
	{R: 229.0 / 255, G: 229.0 / 255, B: 16.0 / 255},
	{R: 36.0 / 255, G: 114.0 / 255, B: 200.0 / 255},
	{R: 188.0 / 255, G: 63.0 / 255, B: 188.0 / 255},
	{R: 17.0 / 255, G: 168.0 / 255, B: 205.0 / 255},
	{R: 229.0 / 255, G: 229.0 / 255, B: 229.0 / 255},
}

func colorSequence(profile colorProfile, c colorful.Color, background bool) string {
	key := uint64(profile)<<25 | uint64(colorKey(c))
	if background {
		key |= 1 << 24
	}
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	layer := 38
	if background {
		layer = 48
	}
	r, g, b := c.RGB255()

	var seq string
	switch profile {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", layer, r, g, b)
	case colorANSI256:
		idx := 16 + 36*(int(r)*5/255) + 6*(int(g)*5/255) + int(b)*5/255
		seq = fmt.Sprintf("\x1b[%d;5;%dm", layer, idx)
	case colorANSI16:
		best := 0
		bestDist := math.MaxFloat64
		for i, p := range ansi16Palette {
			if d := c.DistanceRgb(p); d < bestDist {
				bestDist = d
				best = i
			}
		}
		seq = fmt.Sprintf("\x1b[%dm", layer-8+best)
	}

	seqCache.Store(key, seq)
	return seq
}
