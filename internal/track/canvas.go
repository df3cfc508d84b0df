package track

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	mask uint8 // braille dots
	r    rune  // text glyph, wins over dots
	fg   string
	bg   string
}

// Canvas is a cell grid with a braille micro-grid (2x4 dots per cell) underneath a
// text layer. Micro x coordinates are board pixels.
type Canvas struct {
	w, h  int // in cells
	cells [][]cell
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cells := make([][]cell, h)
	for i := range cells {
		cells[i] = make([]cell, w)
	}
	return &Canvas{w: w, h: h, cells: cells}
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

func (c *Canvas) at(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return nil
	}
	return &c.cells[cy][cx]
}

// SetPixel sets a micro-pixel at micro coords (2x4 per cell)
func (c *Canvas) SetPixel(mx, my int, fg string) {
	if mx < 0 || my < 0 {
		return
	}
	p := c.at(mx/2, my/4)
	if p == nil {
		return
	}
	rx, ry := mx%2, my%4
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	p.mask |= bit
	if fg != "" {
		p.fg = fg
	}
}

// Line draws on the micro-grid using Bresenham.
func (c *Canvas) Line(x0, y0, x1, y1 int, fg string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.SetPixel(x0, y0, fg)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Put writes a glyph into a cell.
func (c *Canvas) Put(cx, cy int, r rune, fg string) {
	p := c.at(cx, cy)
	if p == nil {
		return
	}
	p.r = r
	if fg != "" {
		p.fg = fg
	}
}

// Text writes s from cell cx, clipped to the canvas. Wide runes take two cells.
func (c *Canvas) Text(cx, cy int, s string, fg string) {
	for _, r := range s {
		c.Put(cx, cy, r, fg)
		cx += max(1, runewidth.RuneWidth(r))
	}
}

// Shade sets the background of every cell covering micro columns [mx0, mx1].
func (c *Canvas) Shade(mx0, mx1 int, bg string) {
	if mx1 < mx0 {
		mx0, mx1 = mx1, mx0
	}
	for cx := max(0, mx0/2); cx <= mx1/2 && cx < c.w; cx++ {
		for cy := 0; cy < c.h; cy++ {
			c.cells[cy][cx].bg = bg
		}
	}
}

func (p cell) glyph() rune {
	switch {
	case p.r != 0:
		return p.r
	case p.mask != 0:
		return rune(0x2800 + int(p.mask))
	}
	return ' '
}

// Lines returns the canvas without colours.
func (c *Canvas) Lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			row[x] = c.cells[y][x].glyph()
		}
		out[y] = string(row)
	}
	return out
}

// Render returns the canvas with colours, one lipgloss span per run of equal style.
func (c *Canvas) Render() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		row := c.cells[y]
		for x := 0; x < c.w; {
			end := x + 1
			for end < c.w && row[end].fg == row[x].fg && row[end].bg == row[x].bg {
				end++
			}
			run := make([]rune, 0, end-x)
			for i := x; i < end; i++ {
				run = append(run, row[i].glyph())
			}
			if row[x].fg == "" && row[x].bg == "" {
				sb.WriteString(string(run))
			} else {
				st := lipgloss.NewStyle()
				if row[x].fg != "" {
					st = st.Foreground(lipgloss.Color(row[x].fg))
				}
				if row[x].bg != "" {
					st = st.Background(lipgloss.Color(row[x].bg))
				}
				sb.WriteString(st.Render(string(run)))
			}
			x = end
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
