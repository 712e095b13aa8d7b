package ui

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/tapburst/internal/reaction"
)

var testBackground = colorful.Color{R: 26.0 / 255, G: 26.0 / 255, B: 46.0 / 255}

func newTestCanvas() *canvas {
	return newCanvas(42, 20, 420, 600, testBackground)
}

func TestCanvasLocate(t *testing.T) {
	cv := newTestCanvas()

	tests := []struct {
		x, y     float64
		col, row int
		ok       bool
	}{
		{0, 0, 0, 0, true},
		{105, 300, 10, 10, true},
		{419.9, 599.9, 41, 19, true},
		{420, 10, 0, 0, false},
		{-1, 10, 0, 0, false},
		{10, -50, 0, 0, false},
	}
	for _, tt := range tests {
		col, row, ok := cv.locate(tt.x, tt.y)
		if ok != tt.ok || (ok && (col != tt.col || row != tt.row)) {
			t.Fatalf("locate(%v, %v): expected (%d, %d, %v), got (%d, %d, %v)",
				tt.x, tt.y, tt.col, tt.row, tt.ok, col, row, ok)
		}
	}
}

func TestCanvasBackgroundGradient(t *testing.T) {
	cv := newTestCanvas()

	top, bottom := cv.rowBG[0], cv.rowBG[cv.rows-1]
	if colorKey(bottom) != colorKey(testBackground) {
		t.Fatalf("expected bottom row to be the background, got %s", bottom.Hex())
	}
	if top.R >= bottom.R || top.B >= bottom.B {
		t.Fatalf("expected darker top row, got %s over %s", top.Hex(), bottom.Hex())
	}
}

func TestDrawParticle(t *testing.T) {
	tests := []struct {
		name string
		size float64
		want string
	}{
		{"large", 5, "●"},
		{"medium", 3, "•"},
		{"small", 1, "·"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := newTestCanvas()
			p := reaction.Particle{X: 105, Y: 300, Size: tt.size, Opacity: 0.5, Color: "#ff0000", Life: 1}
			cv.drawParticle(p)

			cl := cv.at(10, 10)
			if cl.ch != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, cl.ch)
			}
			want := blend(cv.rowBG[10], colorful.Color{R: 1}, 0.3)
			if colorKey(cl.fg) != colorKey(want) {
				t.Fatalf("expected fg %s, got %s", want.Hex(), cl.fg.Hex())
			}
		})
	}
}

func TestDrawParticleSkipsFaint(t *testing.T) {
	cv := newTestCanvas()
	cv.drawParticle(reaction.Particle{X: 105, Y: 300, Size: 5, Opacity: 0.04, Color: "#ff0000"})
	cv.drawParticle(reaction.Particle{X: 105, Y: -20, Size: 5, Opacity: 1, Color: "#ff0000"})

	for _, cl := range cv.cells {
		if cl.ch != " " {
			t.Fatalf("expected untouched canvas, found %q", cl.ch)
		}
	}
}

func testEmoji(scale, opacity float64) *reaction.Emoji {
	return &reaction.Emoji{
		Glyph:   "👍",
		Color:   "#34c759",
		X:       105,
		Y:       300,
		Scale:   scale,
		Opacity: opacity,
	}
}

func TestDrawEmojiGlyphAndGlow(t *testing.T) {
	cv := newTestCanvas()
	cv.drawEmoji(testEmoji(1, 1), 42)

	if got := cv.at(10, 10).ch; got != "👍" {
		t.Fatalf("expected glyph, got %q", got)
	}
	if got := cv.at(11, 10).ch; got != "" {
		t.Fatalf("expected continuation cell, got %q", got)
	}
	if colorKey(cv.at(10, 10).bg) == colorKey(cv.rowBG[10]) {
		t.Fatal("expected glow behind the glyph")
	}
	if colorKey(cv.at(0, 0).bg) != colorKey(cv.rowBG[0]) {
		t.Fatal("expected glow to stay near the glyph")
	}
}

func TestDrawEmojiSizes(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		opacity float64
		want    string
	}{
		{"small becomes dot", 0.2, 1, "•"},
		{"faded becomes dot", 1, 0.2, "•"},
		{"tiny is skipped", 0.05, 1, " "},
		{"invisible is skipped", 1, 0.01, " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := newTestCanvas()
			cv.drawEmoji(testEmoji(tt.scale, tt.opacity), 42)
			if got := cv.at(10, 10).ch; got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCanvasWideGlyphEdges(t *testing.T) {
	cv := newCanvas(4, 1, 40, 10, testBackground)

	cv.put(3, 0, "👍", fallbackColor)
	if cv.at(2, 0).ch != "👍" || cv.at(3, 0).ch != "" {
		t.Fatalf("expected glyph shifted left at the edge, got %q %q", cv.at(2, 0).ch, cv.at(3, 0).ch)
	}

	cv.put(3, 0, "x", fallbackColor)
	if cv.at(2, 0).ch != " " || cv.at(3, 0).ch != "x" {
		t.Fatalf("expected overwritten half to clear the glyph, got %q %q", cv.at(2, 0).ch, cv.at(3, 0).ch)
	}

	if got := cv.render(colorNone); got != "   x" {
		t.Fatalf("expected plain row, got %q", got)
	}
}

func TestCanvasRenderPlain(t *testing.T) {
	cv := newCanvas(5, 3, 50, 30, testBackground)
	cv.drawText(1, "hey", fallbackColor)

	want := "     \n hey \n     "
	if got := cv.render(colorNone); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCanvasRenderTrueColor(t *testing.T) {
	cv := newCanvas(3, 1, 30, 10, testBackground)
	cv.put(1, 0, "x", colorful.Color{R: 1})

	got := cv.render(colorTrueColor)
	if !strings.HasPrefix(got, colorSequence(colorTrueColor, cv.rowBG[0], true)) {
		t.Fatalf("expected background sequence first, got %q", got)
	}
	if strings.Count(got, "\x1b[48;2;") != 1 {
		t.Fatalf("expected one background sequence for a flat row, got %q", got)
	}
	if !strings.Contains(got, "\x1b[38;2;255;0;0mx") {
		t.Fatalf("expected red foreground for x, got %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("expected reset at end of row, got %q", got)
	}
}

func TestGlyphWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"a", 1},
		{"•", 1},
		{"👍", 2},
		{"❤️", 2},
	}
	for _, tt := range tests {
		if got := glyphWidth(tt.in); got != tt.want {
			t.Fatalf("glyphWidth(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestColorSequence(t *testing.T) {
	red := colorful.Color{R: 1}
	tests := []struct {
		profile    colorProfile
		background bool
		want       string
	}{
		{colorTrueColor, false, "\x1b[38;2;255;0;0m"},
		{colorTrueColor, true, "\x1b[48;2;255;0;0m"},
		{colorANSI256, false, "\x1b[38;5;196m"},
		{colorANSI16, false, "\x1b[31m"},
		{colorANSI16, true, "\x1b[41m"},
		{colorNone, false, ""},
	}
	for _, tt := range tests {
		if got := colorSequence(tt.profile, red, tt.background); got != tt.want {
			t.Fatalf("colorSequence(%d, bg=%v): expected %q, got %q", tt.profile, tt.background, tt.want, got)
		}
	}
}

func TestParseHexFallback(t *testing.T) {
	if got := parseHex("#34c759").Hex(); got != "#34c759" {
		t.Fatalf("expected #34c759, got %s", got)
	}
	if got := parseHex("green"); got != fallbackColor {
		t.Fatalf("expected fallback for bad colour, got %v", got)
	}
}
