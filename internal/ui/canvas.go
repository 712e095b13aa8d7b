package ui

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/olivier-w/tapburst/internal/reaction"
)

const (
	// Reactions below this logical size, or fainter than minOpacity, are not
	// drawn at all.
	minDrawSize = 4.0
	minOpacity  = 0.05

	// Reactions smaller than glyphSize, or fading below glyphOpacity, are
	// drawn as a coloured dot instead of the glyph.
	glyphSize    = 16.0
	glyphOpacity = 0.3

	glowPadding      = 8.0
	glowStrength     = 0.2
	particleStrength = 0.6

	// The top of the canvas is the background darkened by this much.
	gradientDepth = 0.4
)

type cell struct {
	ch string // empty for the right half of a wide glyph
	fg colorful.Color
	bg colorful.Color
}

// canvas rasterizes the logical viewport onto terminal cells.
type canvas struct {
	cols, rows    int
	width, height float64
	rowBG         []colorful.Color
	cells         []cell
}

func newCanvas(cols, rows int, width, height float64, background colorful.Color) *canvas {
	c := &canvas{
		cols:   cols,
		rows:   rows,
		width:  width,
		height: height,
		rowBG:  make([]colorful.Color, rows),
		cells:  make([]cell, cols*rows),
	}
	top := blend(background, colorful.Color{}, gradientDepth)
	for row := range rows {
		t := 0.0
		if rows > 1 {
			t = float64(row) / float64(rows-1)
		}
		bg := blend(top, background, t)
		c.rowBG[row] = bg
		for col := range cols {
			c.cells[row*cols+col] = cell{ch: " ", fg: bg, bg: bg}
		}
	}
	return c
}

// locate maps a logical point to its cell.
func (c *canvas) locate(x, y float64) (col, row int, ok bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0, 0, false
	}
	col = int(x / c.width * float64(c.cols))
	row = int(y / c.height * float64(c.rows))
	return col, row, col < c.cols && row < c.rows
}

// center is the logical point at the middle of a cell.
func (c *canvas) center(col, row int) (x, y float64) {
	return (float64(col) + 0.5) / float64(c.cols) * c.width,
		(float64(row) + 0.5) / float64(c.rows) * c.height
}

func (c *canvas) at(col, row int) *cell {
	return &c.cells[row*c.cols+col]
}

// put writes s into a cell, taking the next cell too for wide glyphs and
// repairing any wide glyph it overwrites half of.
func (c *canvas) put(col, row int, s string, fg colorful.Color) {
	w := glyphWidth(s)
	if w == 2 && col == c.cols-1 {
		col--
	}
	if col < 0 || c.cols < w {
		return
	}
	for i := range w {
		c.unlink(col+i, row)
	}
	head := c.at(col, row)
	head.ch, head.fg = s, fg
	if w == 2 {
		c.at(col+1, row).ch = ""
	}
}

func (c *canvas) unlink(col, row int) {
	cur := c.at(col, row)
	if cur.ch == "" && col > 0 {
		c.at(col-1, row).ch = " "
	} else if glyphWidth(cur.ch) == 2 && col+1 < c.cols {
		c.at(col+1, row).ch = " "
	}
	cur.ch = " "
}

func (c *canvas) drawParticle(p reaction.Particle) {
	if p.Opacity <= minOpacity {
		return
	}
	col, row, ok := c.locate(p.X, p.Y)
	if !ok {
		return
	}
	ch := "·"
	switch {
	case p.Size >= 4:
		ch = "●"
	case p.Size >= 2.5:
		ch = "•"
	}
	c.put(col, row, ch, blend(c.rowBG[row], parseHex(p.Color), p.Opacity*particleStrength))
}

// drawGlow tints the background of every cell within radius of (x, y).
func (c *canvas) drawGlow(x, y, radius float64, color colorful.Color, amount float64) {
	colLo, rowLo := c.clampCell(x-radius, y-radius)
	colHi, rowHi := c.clampCell(x+radius, y+radius)
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			cx, cy := c.center(col, row)
			if math.Hypot(cx-x, cy-y) > radius {
				continue
			}
			c.at(col, row).bg = blend(c.rowBG[row], color, amount)
		}
	}
}

func (c *canvas) clampCell(x, y float64) (col, row int) {
	col = int(math.Floor(x / c.width * float64(c.cols)))
	row = int(math.Floor(y / c.height * float64(c.rows)))
	return max(0, min(col, c.cols-1)), max(0, min(row, c.rows-1))
}

func (c *canvas) drawEmoji(e *reaction.Emoji, spawnSize float64) {
	size := spawnSize * e.Scale
	if e.Opacity < minOpacity || size < minDrawSize {
		return
	}
	color := parseHex(e.Color)
	c.drawGlow(e.X, e.Y, size/2+glowPadding, color, e.Opacity*glowStrength)

	col, row, ok := c.locate(e.X, e.Y)
	if !ok {
		return
	}
	if size < glyphSize || e.Opacity < glyphOpacity {
		c.put(col, row, "•", blend(c.rowBG[row], color, e.Opacity))
		return
	}
	c.put(col, row, e.Glyph, color)
}

// drawText centres plain text on a row.
func (c *canvas) drawText(row int, text string, fg colorful.Color) {
	if row < 0 || row >= c.rows {
		return
	}
	col := (c.cols - runewidth.StringWidth(text)) / 2
	for _, r := range text {
		if col >= c.cols {
			return
		}
		if col >= 0 {
			c.put(col, row, string(r), fg)
		}
		col += runewidth.RuneWidth(r)
	}
}

func (c *canvas) render(p colorProfile) string {
	var sb strings.Builder
	sb.Grow(c.cols * c.rows * 4)
	for row := range c.rows {
		state := newANSIState(p)
		for col := range c.cols {
			cl := c.at(col, row)
			if cl.ch == "" {
				continue
			}
			state.set(&sb, cl.fg, cl.bg)
			sb.WriteString(cl.ch)
		}
		state.reset(&sb)
		if row < c.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// glyphWidth is the number of cells s occupies. Emoji presentation
// selectors force a width of two, which runewidth does not account for.
func glyphWidth(s string) int {
	if s == "" {
		return 1
	}
	w := runewidth.StringWidth(s)
	if w < 2 && strings.ContainsRune(s, '\uFE0F') {
		w = 2
	}
	return max(1, min(w, 2))
}

// renderReactions draws the particles of every reaction, then the reactions
// themselves on top.
func renderReactions(cv *canvas, emojis []*reaction.Emoji, spawnSize float64) {
	for _, e := range emojis {
		for _, p := range e.Particles {
			cv.drawParticle(p)
		}
	}
	for _, e := range emojis {
		cv.drawEmoji(e, spawnSize)
	}
}
