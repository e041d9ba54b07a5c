package search

import "github.com/specialistvlad/wordgrid/internal/puzzle"

// verticalLines returns every column top to bottom followed by the same
// column bottom to top, columns in ascending order.
func verticalLines(g *puzzle.Grid) []line {
	n := g.Size()
	lines := make([]line, 0, 2*n)
	for c := 0; c < n; c++ {
		coords := make([]puzzle.Coord, n)
		for r := 0; r < n; r++ {
			coords[r] = puzzle.Coord{Row: r, Col: c}
		}
		fwd := newLine(g, puzzle.South, coords)
		lines = append(lines, fwd, fwd.reversed())
	}
	return lines
}
