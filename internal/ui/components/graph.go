package components

import (
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

const (
	glyphEmpty  = ' '
	glyphHAxis  = '─'
	glyphVAxis  = '│'
	glyphOrigin = '┼'
	glyphTick   = '┼'
	glyphLine   = '█'
)

// DefaultExtent is the half-width of the plotted square in graph units.
// Generated lines all cross the visible window at this extent.
const DefaultExtent = 6

// Graph plots a line on a character grid covering [-Extent, Extent] on
// both axes. Terminal cells are roughly twice as tall as wide, so callers
// usually pick Cols close to 2*Rows for an undistorted picture.
type Graph struct {
	Cols   int
	Rows   int
	Extent float64
}

// NewGraph sizes a graph to fit within maxRows rows and maxCols columns,
// keeping both dimensions odd so the axes sit on the centre cell.
func NewGraph(maxCols, maxRows int) Graph {
	rows := max(7, min(maxRows, 21))
	if rows%2 == 0 {
		rows--
	}
	cols := min(2*rows+1, maxCols)
	if cols%2 == 0 {
		cols--
	}
	if cols < 7 {
		cols = 7
	}
	return Graph{Cols: cols, Rows: rows, Extent: DefaultExtent}
}

func (g Graph) cellW() float64 { return 2 * g.Extent / float64(g.Cols) }
func (g Graph) cellH() float64 { return 2 * g.Extent / float64(g.Rows) }

// col maps x to a column, or -1 when x falls outside the window.
func (g Graph) col(x float64) int {
	c := int(math.Floor((x + g.Extent) / g.cellW()))
	if c < 0 || c >= g.Cols {
		return -1
	}
	return c
}

// row maps y to a row (row 0 at the top), or -1 when outside the window.
func (g Graph) row(y float64) int {
	r := int(math.Floor((g.Extent - y) / g.cellH()))
	if r < 0 || r >= g.Rows {
		return -1
	}
	return r
}

func clampRow(r, rows int) int {
	return max(0, min(r, rows-1))
}

// Cells rasterises the axes and the line into a grid of runes.
func (g Graph) Cells(l problemgen.Line) [][]rune {
	grid := make([][]rune, g.Rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(glyphEmpty), g.Cols))
	}

	axisRow, axisCol := g.row(0), g.col(0)
	if axisRow >= 0 {
		for c := range grid[axisRow] {
			grid[axisRow][c] = glyphHAxis
		}
	}
	if axisCol >= 0 {
		for r := range grid {
			grid[r][axisCol] = glyphVAxis
		}
	}
	for i := -int(g.Extent) + 1; i < int(g.Extent); i++ {
		if i == 0 {
			continue
		}
		if c := g.col(float64(i)); axisRow >= 0 && c >= 0 {
			grid[axisRow][c] = glyphTick
		}
		if r := g.row(float64(i)); axisCol >= 0 && r >= 0 {
			grid[r][axisCol] = glyphTick
		}
	}
	if axisRow >= 0 && axisCol >= 0 {
		grid[axisRow][axisCol] = glyphOrigin
	}

	if l.Vertical() {
		if c := g.col(float64(l.X)); c >= 0 {
			for r := range grid {
				grid[r][c] = glyphLine
			}
		}
		return grid
	}

	// Each column is filled over the span of y the line covers within it,
	// so steep lines stay connected.
	const inset = 1e-9
	w := g.cellW()
	for c := 0; c < g.Cols; c++ {
		x0 := -g.Extent + float64(c)*w + inset
		x1 := x0 + w - 2*inset
		ya, yb := l.Y(x0), l.Y(x1)
		hi, lo := math.Max(ya, yb), math.Min(ya, yb)
		if hi < -g.Extent || lo > g.Extent {
			continue
		}
		top := clampRow(int(math.Floor((g.Extent-hi)/g.cellH())), g.Rows)
		bottom := clampRow(int(math.Floor((g.Extent-lo)/g.cellH())), g.Rows)
		for r := top; r <= bottom; r++ {
			grid[r][c] = glyphLine
		}
	}
	return grid
}

// Render draws the graph with the line in lineColor and dim axes.
func (g Graph) Render(l problemgen.Line, lineColor color.Color) string {
	axisStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	lineStyle := lipgloss.NewStyle().Foreground(lineColor)

	grid := g.Cells(l)
	lines := make([]string, len(grid))
	for r, cells := range grid {
		var b strings.Builder
		start := 0
		for start < len(cells) {
			end := start
			onLine := cells[start] == glyphLine
			for end < len(cells) && (cells[end] == glyphLine) == onLine {
				end++
			}
			run := string(cells[start:end])
			if onLine {
				b.WriteString(lineStyle.Render(run))
			} else {
				b.WriteString(axisStyle.Render(run))
			}
			start = end
		}
		lines[r] = b.String()
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(strings.Join(lines, "\n"))
}
