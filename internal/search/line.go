package search

import (
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

// line is one readable path through the grid.
type line struct {
	text   string
	coords []puzzle.Coord
	dir    puzzle.Direction
}

func newLine(g *puzzle.Grid, dir puzzle.Direction, coords []puzzle.Coord) line {
	return line{text: g.Spell(coords), coords: coords, dir: dir}
}

// reversed reads the same cells from the other end.
func (l line) reversed() line {
	n := len(l.coords)
	coords := make([]puzzle.Coord, n)
	for i, c := range l.coords {
		coords[n-1-i] = c
	}
	runes := []rune(l.text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return line{text: string(runes), coords: coords, dir: l.dir.Reverse()}
}

// find returns the coordinates of the first occurrence of word in the line.
func (l line) find(word string) (puzzle.FindResult, bool) {
	idx := strings.Index(l.text, word)
	if idx < 0 {
		return puzzle.NotFound(word), false
	}
	start := utf8.RuneCountInString(l.text[:idx])
	size := utf8.RuneCountInString(word)

	coords := make([]puzzle.Coord, size)
	copy(coords, l.coords[start:start+size])
	return puzzle.FindResult{
		Word:      word,
		Found:     true,
		Direction: l.dir,
		Coords:    coords,
	}, true
}

// scan tries each line in order and stops at the first match.
func scan(lines []line, word string) (puzzle.FindResult, bool) {
	for _, l := range lines {
		if r, ok := l.find(word); ok {
			return r, true
		}
	}
	return puzzle.NotFound(word), false
}
