// Package export serialises solutions into reports for files and remote
// consumers.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatJSON, FormatMsgpack}

// Record is the serialised form of one search result.
type Record struct {
	Word      string         `json:"word" msgpack:"word"`
	Found     bool           `json:"found" msgpack:"found"`
	Direction string         `json:"direction,omitempty" msgpack:"direction,omitempty"`
	Coords    []puzzle.Coord `json:"coords,omitempty" msgpack:"coords,omitempty"`
}

// Report summarises one solved puzzle.
type Report struct {
	Puzzle  string         `json:"puzzle" msgpack:"puzzle"`
	Size    int            `json:"size" msgpack:"size"`
	Rows    []string       `json:"rows" msgpack:"rows"`
	Found   int            `json:"found" msgpack:"found"`
	Total   int            `json:"total" msgpack:"total"`
	Solved  []puzzle.Coord `json:"solved" msgpack:"solved"`
	Results []Record       `json:"results" msgpack:"results"`
}

// NewReport builds the report for a solution.
func NewReport(name string, sol *puzzle.Solution) *Report {
	r := &Report{
		Puzzle:  name,
		Size:    sol.Grid.Size(),
		Rows:    sol.Grid.Rows(),
		Found:   sol.FoundCount(),
		Total:   len(sol.Results),
		Solved:  sol.Solved.Coords(),
		Results: make([]Record, 0, len(sol.Results)),
	}
	for _, res := range sol.Results {
		rec := Record{Word: res.Word, Found: res.Found, Coords: res.Coords}
		if res.Found {
			rec.Direction = res.Direction.String()
		}
		r.Results = append(r.Results, rec)
	}
	return r
}

// ValidateFormat reports whether format names a supported encoding.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatJSON, FormatMsgpack:
		return nil
	}
	return fmt.Errorf("unsupported output format %q: want one of %s", format, strings.Join(Formats, ", "))
}

// Write encodes reports to w. JSON output is indented and holds an array;
// msgpack output holds an array too.
func Write(w io.Writer, format string, reports []*Report) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if reports == nil {
		reports = []*Report{}
	}
	switch strings.ToLower(format) {
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(reports); err != nil {
			return fmt.Errorf("failed to encode msgpack report: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
	}
	return nil
}

// WriteFile writes reports to path, replacing any existing file.
func WriteFile(path, format string, reports []*Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	if err := Write(f, format, reports); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file %s: %w", path, err)
	}
	return nil
}
