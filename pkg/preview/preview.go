// Package preview draws a placement as a character grid for terminals.
//
// The boundary is sampled at the centre of every cell: cells inside the
// trigger, the positioned content, the collision padding or the free area
// get their own glyph and lipgloss style.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/anchor/pkg/geom"
	"github.com/matzehuels/anchor/pkg/placement"
)

// Scene is what gets drawn.
type Scene struct {
	Boundary geom.Rect
	Trigger  geom.Rect
	Content  geom.Rect // final content rectangle, already positioned
	Padding  float64
	Result   placement.Result
	Hidden   bool // draw the trigger only
}

// Options controls the grid size and styling.
type Options struct {
	Cols  int
	Rows  int
	Plain bool // no colours, glyphs only
}

// DefaultOptions is an 80x24 styled grid.
func DefaultOptions() Options {
	return Options{Cols: 80, Rows: 24}
}

type cell int

const (
	cellFree cell = iota
	cellPadding
	cellTrigger
	cellContent
	cellOverlap
)

var glyphs = map[cell]string{
	cellFree:    "·",
	cellPadding: "░",
	cellTrigger: "█",
	cellContent: "▓",
	cellOverlap: "▒",
}

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorAmber = lipgloss.Color("220")
	colorDim   = lipgloss.Color("240")
	colorGray  = lipgloss.Color("245")
)

func styles(degraded bool) map[cell]lipgloss.Style {
	content := colorGreen
	if degraded {
		content = colorRed
	}
	return map[cell]lipgloss.Style{
		cellFree:    lipgloss.NewStyle().Foreground(colorDim),
		cellPadding: lipgloss.NewStyle().Foreground(colorGray),
		cellTrigger: lipgloss.NewStyle().Foreground(colorCyan),
		cellContent: lipgloss.NewStyle().Foreground(content),
		cellOverlap: lipgloss.NewStyle().Foreground(colorAmber),
	}
}

// Render draws the scene.
func Render(s Scene, opts Options) string {
	if opts.Cols <= 0 || opts.Rows <= 0 {
		opts = DefaultOptions()
	}
	grid := Grid(s, opts.Cols, opts.Rows)
	st := styles(s.Result.Degraded)

	var b strings.Builder
	for r, row := range grid {
		for start := 0; start < len(row); {
			end := start
			for end < len(row) && row[end] == row[start] {
				end++
			}
			run := strings.Repeat(glyphs[row[start]], end-start)
			if opts.Plain {
				b.WriteString(run)
			} else {
				b.WriteString(st[row[start]].Render(run))
			}
			start = end
		}
		if r < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Grid samples the scene into rows of cells.
func Grid(s Scene, cols, rows int) [][]cell {
	inner := s.Boundary.Inset(s.Padding)
	cw := s.Boundary.Width / float64(cols)
	ch := s.Boundary.Height / float64(rows)

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		y := s.Boundary.Y + (float64(r)+0.5)*ch
		for c := range grid[r] {
			x := s.Boundary.X + (float64(c)+0.5)*cw
			inTrigger := s.Trigger.ContainsPoint(x, y)
			inContent := !s.Hidden && s.Content.ContainsPoint(x, y)
			switch {
			case inTrigger && inContent:
				grid[r][c] = cellOverlap
			case inContent:
				grid[r][c] = cellContent
			case inTrigger:
				grid[r][c] = cellTrigger
			case !inner.ContainsPoint(x, y):
				grid[r][c] = cellPadding
			}
		}
	}
	return grid
}

// Legend describes the glyphs and the resolved placement on one line.
func Legend(s Scene, plain bool) string {
	st := styles(s.Result.Degraded)
	item := func(c cell, label string) string {
		g := glyphs[c]
		if !plain {
			g = st[c].Render(g)
		}
		return g + " " + label
	}

	status := fmt.Sprintf("side %s at (%g, %g)", s.Result.Side, s.Result.X, s.Result.Y)
	switch {
	case s.Hidden:
		status = "hidden: trigger outside viewport"
	case s.Result.Degraded:
		status += ", degraded"
	case s.Result.Flipped:
		status += ", flipped"
	}

	return strings.Join([]string{
		item(cellTrigger, "trigger"),
		item(cellContent, "content"),
		item(cellPadding, "padding"),
		status,
	}, "   ")
}
