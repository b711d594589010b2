// Package viz renders solution fields in the terminal: a lipgloss-
// styled heatmap of the interior plus asciigraph cross sections.
package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/advdiff/internal/field"
)

// shadeRamp maps normalized values onto terminal colors, cold to hot.
var shadeRamp = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("17")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("19")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("50")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("154")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

// Heatmap renders the interior of g downsampled to roughly cols x rows
// terminal cells. Each cell shows the average of the grid cells it
// covers, colored by its position in the field's value range.
func Heatmap(g *field.Grid, cols, rows int) string {
	if cols > g.NX() {
		cols = g.NX()
	}
	if rows > g.NY() {
		rows = g.NY()
	}

	cells := make([][]float64, rows)
	counts := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]float64, cols)
		counts[r] = make([]int, cols)
	}

	lo, hi := g.At(0, 0), g.At(0, 0)
	g.Each(func(x, y int, v float64) {
		c := x * cols / g.NX()
		r := y * rows / g.NY()
		cells[r][c] += v
		counts[r][c]++
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	})

	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for r := rows - 1; r >= 0; r-- {
		for c := 0; c < cols; c++ {
			v := cells[r][c] / float64(counts[r][c])
			bucket := int((v - lo) / span * float64(len(shadeRamp)))
			if bucket >= len(shadeRamp) {
				bucket = len(shadeRamp) - 1
			}
			if bucket < 0 {
				bucket = 0
			}
			b.WriteString(shadeRamp[bucket].Render("██"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CrossSections plots the center row and center column of g.
func CrossSections(g *field.Grid, width, height int) string {
	row := make([]float64, g.NX())
	col := make([]float64, g.NY())
	for x := 0; x < g.NX(); x++ {
		row[x] = g.At(x, g.NY()/2)
	}
	for y := 0; y < g.NY(); y++ {
		col[y] = g.At(g.NX()/2, y)
	}

	rowGraph := asciigraph.Plot(row,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("u along y = 0.5"),
	)
	colGraph := asciigraph.Plot(col,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("u along x = 0.5"),
	)
	return rowGraph + "\n\n" + colGraph + "\n"
}
