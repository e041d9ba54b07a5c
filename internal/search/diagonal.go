package search

import "github.com/specialistvlad/wordgrid/internal/puzzle"

// diagonal generates the i-th cell of one diagonal family at offset a in an
// n×n grid.
type diagonal struct {
	dir  puzzle.Direction
	cell func(n, a, i int) puzzle.Coord
}

// Offset a picks the diagonal that starts a cells in from a grid corner.
// Together the four forward families cover every diagonal of both
// orientations; the main diagonal and anti-diagonal are reached twice at
// a = n-1, which is harmless.
var forwardDiagonals = [4]diagonal{
	// Anti-diagonals of the top-left triangle: row + col = a.
	{puzzle.SouthWest, func(n, a, i int) puzzle.Coord {
		return puzzle.Coord{Row: i, Col: a - i}
	}},
	// Diagonals of the bottom-left triangle, read upwards.
	{puzzle.NorthWest, func(n, a, i int) puzzle.Coord {
		return puzzle.Coord{Row: n - 1 - i, Col: a - i}
	}},
	// Anti-diagonals of the bottom-right triangle, read upwards.
	{puzzle.NorthEast, func(n, a, i int) puzzle.Coord {
		return puzzle.Coord{Row: n - 1 - i, Col: n - 1 - (a - i)}
	}},
	// Diagonals of the top-right triangle.
	{puzzle.SouthEast, func(n, a, i int) puzzle.Coord {
		return puzzle.Coord{Row: i, Col: n - 1 - (a - i)}
	}},
}

// diagonals is the full scan order within one offset: the four forward
// families, then each of them read from the other end.
var diagonals = func() [8]diagonal {
	var all [8]diagonal
	for k, d := range forwardDiagonals {
		all[k] = d
		all[k+4] = reverseDiagonal(d)
	}
	return all
}()

func reverseDiagonal(d diagonal) diagonal {
	return diagonal{
		dir: d.dir.Reverse(),
		cell: func(n, a, i int) puzzle.Coord {
			return d.cell(n, a, diagonalLength(n, a)-1-i)
		},
	}
}

// diagonalLength counts the i satisfying a-i >= 0 and i < n.
func diagonalLength(n, a int) int {
	return min(a+1, n)
}

func (d diagonal) line(g *puzzle.Grid, a int) line {
	n := g.Size()
	coords := make([]puzzle.Coord, diagonalLength(n, a))
	for i := range coords {
		coords[i] = d.cell(n, a, i)
	}
	return newLine(g, d.dir, coords)
}

// diagonalLines returns, for each offset in ascending order, the eight
// diagonal variants in scan order.
func diagonalLines(g *puzzle.Grid) []line {
	n := g.Size()
	lines := make([]line, 0, len(diagonals)*n)
	for a := 0; a < n; a++ {
		for _, d := range diagonals {
			lines = append(lines, d.line(g, a))
		}
	}
	return lines
}
