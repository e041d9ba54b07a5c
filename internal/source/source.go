// Package source reads puzzle grids and word lists from tabular text. Each
// record's first field carries the payload; any further fields are ignored.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

// ErrNoWords is returned when a word list holds no usable words.
var ErrNoWords = errors.New("word list is empty")

// byteOrderMark is written at the start of CSV files by some spreadsheet
// exporters.
const byteOrderMark = "\uFEFF"

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// firstFields returns the first field of every record.
func firstFields(r io.Reader) ([]string, error) {
	cr := newReader(r)
	var out []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		field := rec[0]
		if len(out) == 0 {
			field = strings.TrimPrefix(field, byteOrderMark)
		}
		out = append(out, field)
	}
}

// ReadGrid reads one grid row per record and validates the square shape.
func ReadGrid(r io.Reader) (*puzzle.Grid, error) {
	rows, err := firstFields(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}
	g, err := puzzle.NewGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	return g, nil
}

// ReadWords reads one word per record. Whitespace inside a word is removed
// and records left empty are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	fields, err := firstFields(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := StripSpace(f); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

// StripSpace removes every whitespace character from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// LoadGrid reads a grid file.
func LoadGrid(path string) (*puzzle.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid file '%s': %w", path, err)
	}
	defer f.Close()

	g, err := ReadGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// LoadWords reads a word list file.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list '%s': %w", path, err)
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
