package viz

import (
	"math"
	"strings"

	"github.com/san-kum/brownian/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels; out of range pixels are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Plot maps the world point (x, y) in a symmetric window of half-widths
// (spanX, spanY) around the origin onto the canvas.
func (c *Canvas) Plot(x, y, spanX, spanY float64) {
	px, py := c.project(x, y, spanX, spanY)
	c.Set(px, py)
}

// Axes draws the x = 0 and y = 0 lines.
func (c *Canvas) Axes() {
	w, h := c.Width*2, c.Height*4
	for x := 0; x < w; x += 2 {
		c.Set(x, h/2)
	}
	for y := 0; y < h; y += 2 {
		c.Set(w/2, y)
	}
}

func (c *Canvas) project(x, y, spanX, spanY float64) (int, int) {
	w, h := float64(c.Width*2), float64(c.Height*4)
	px := int((x/spanX + 1) / 2 * (w - 1))
	py := int((1 - (y/spanY+1)/2) * (h - 1))
	return px, py
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// DrawPhase redraws c with axes and the (x, v) points of states, scaled to
// the largest excursion plus a 10% margin.
func DrawPhase(c *Canvas, states []dynamo.State) {
	c.Clear()
	c.Axes()

	spanX, spanV := 1.0, 1.0
	for _, s := range states {
		if !s.IsValid() {
			continue
		}
		spanX = math.Max(spanX, math.Abs(s.X))
		spanV = math.Max(spanV, math.Abs(s.V))
	}
	spanX *= 1.1
	spanV *= 1.1

	for _, s := range states {
		c.Plot(s.X, s.V, spanX, spanV)
	}
}
