// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package puzzle

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrEmptyGrid is returned when a grid has no rows.
	ErrEmptyGrid = errors.New("grid has no rows")
	// ErrNotSquare is returned when a row length differs from the row count.
	ErrNotSquare = errors.New("grid is not square")
)

// Grid is an immutable square matrix of characters.
type Grid struct {
	cells [][]rune
}

// NewGrid builds a Grid from its rows. Every row must hold exactly as many
// characters as there are rows; nothing is padded or truncated.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	n := len(rows)
	cells := make([][]rune, n)
	for i, row := range rows {
		if got := utf8.RuneCountInString(row); got != n {
			return nil, fmt.Errorf("%w: row %d has %d characters, want %d", ErrNotSquare, i, got, n)
		}
		cells[i] = []rune(row)
	}
	return &Grid{cells: cells}, nil
}

// Size returns N, the number of rows (and columns).
func (g *Grid) Size() int {
	return len(g.cells)
}

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c Coord) bool {
	n := g.Size()
	return c.Row >= 0 && c.Row < n && c.Col >= 0 && c.Col < n
}

// At returns the character at c. It panics if c is out of bounds, like an
// index expression would.
func (g *Grid) At(c Coord) rune {
	return g.cells[c.Row][c.Col]
}

// Rows returns a copy of the grid as strings, top to bottom.
func (g *Grid) Rows() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

// Spell returns the characters found at coords, in order.
func (g *Grid) Spell(coords []Coord) string {
	buf := make([]rune, len(coords))
	for i, c := range coords {
		buf[i] = g.At(c)
	}
	return string(buf)
}
