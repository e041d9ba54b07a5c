package search

import "github.com/specialistvlad/wordgrid/internal/puzzle"

// horizontalLines returns every row left to right followed by the same row
// right to left, rows in index order.
func horizontalLines(g *puzzle.Grid) []line {
	n := g.Size()
	lines := make([]line, 0, 2*n)
	for r := 0; r < n; r++ {
		coords := make([]puzzle.Coord, n)
		for c := 0; c < n; c++ {
			coords[c] = puzzle.Coord{Row: r, Col: c}
		}
		fwd := newLine(g, puzzle.East, coords)
		lines = append(lines, fwd, fwd.reversed())
	}
	return lines
}
