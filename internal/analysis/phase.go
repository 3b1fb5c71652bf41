package analysis

import (
	"strings"

	"github.com/san-kum/brownian/internal/dynamo"
)

// PhasePortraitToASCII scatters the (x, v) pairs of a trajectory. Early,
// middle and late thirds of the run use '.', 'o' and '•'.
func PhasePortraitToASCII(states []dynamo.State, width, height int) string {
	if len(states) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := states[0].X, states[0].X
	minV, maxV := states[0].V, states[0].V
	for _, s := range states {
		minX, maxX = min(minX, s.X), max(maxX, s.X)
		minV, maxV = min(minV, s.V), max(maxV, s.V)
	}

	rangeX := maxX - minX
	rangeV := maxV - minV
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeV == 0 {
		rangeV = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeX = maxX - minX
	rangeV = maxV - minV

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// Axes first so trajectory points draw over them.
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minV <= 0 && maxV >= 0 {
		row := height - 1 - int((0-minV)/rangeV*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for i, s := range states {
		col := int((s.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((s.V-minV)/rangeV*float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch {
		case i < len(states)/3:
			canvas[row][col] = '.'
		case i < 2*len(states)/3:
			canvas[row][col] = 'o'
		default:
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
