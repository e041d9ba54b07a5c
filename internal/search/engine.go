package search

import (
	"unicode/utf8"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

// Engine searches one grid. Its lines are built once, so an Engine can be
// reused for any number of words and is safe for concurrent use.
type Engine struct {
	grid       *puzzle.Grid
	horizontal []line
	vertical   []line
	diagonal   []line
}

// New prepares an Engine for g.
func New(g *puzzle.Grid) *Engine {
	return &Engine{
		grid:       g,
		horizontal: horizontalLines(g),
		vertical:   verticalLines(g),
		diagonal:   diagonalLines(g),
	}
}

// Grid returns the grid being searched.
func (e *Engine) Grid() *puzzle.Grid {
	return e.grid
}

// FindHorizontal scans the rows.
func (e *Engine) FindHorizontal(word string) (puzzle.FindResult, bool) {
	return e.scan(e.horizontal, word)
}

// FindVertical scans the columns.
func (e *Engine) FindVertical(word string) (puzzle.FindResult, bool) {
	return e.scan(e.vertical, word)
}

// FindDiagonal scans both diagonal orientations.
func (e *Engine) FindDiagonal(word string) (puzzle.FindResult, bool) {
	return e.scan(e.diagonal, word)
}

func (e *Engine) scan(lines []line, word string) (puzzle.FindResult, bool) {
	// Grid lines are always valid UTF-8; an invalid word could only match
	// inside a multibyte character.
	if word == "" || !utf8.ValidString(word) {
		return puzzle.NotFound(word), false
	}
	return scan(lines, word)
}

// Find tries the horizontal, vertical and diagonal scanners in that order and
// returns the first match. An absent word yields a NotFound result.
func (e *Engine) Find(word string) puzzle.FindResult {
	for _, find := range []func(string) (puzzle.FindResult, bool){
		e.FindHorizontal,
		e.FindVertical,
		e.FindDiagonal,
	} {
		if r, ok := find(word); ok {
			return r
		}
	}
	return puzzle.NotFound(word)
}

// Solve searches for every word in order. The coordinates of each found word
// are added to solved, which the caller owns; a nil solved starts a fresh
// set. The returned Solution carries the results in word-list order and the
// accumulator.
func (e *Engine) Solve(words []string, solved *puzzle.SolvedSet) *puzzle.Solution {
	if solved == nil {
		solved = puzzle.NewSolvedSet()
	}
	results := make([]puzzle.FindResult, len(words))
	for i, w := range words {
		results[i] = e.Find(w)
		solved.Add(results[i].Coords...)
	}
	return &puzzle.Solution{Grid: e.grid, Results: results, Solved: solved}
}

// Solve is shorthand for New(g).Solve(words, solved).
func Solve(g *puzzle.Grid, words []string, solved *puzzle.SolvedSet) *puzzle.Solution {
	return New(g).Solve(words, solved)
}
