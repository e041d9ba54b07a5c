package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/specialistvlad/wordgrid/internal/ctxlog"
	"github.com/specialistvlad/wordgrid/internal/fsutil"
	"github.com/specialistvlad/wordgrid/internal/puzzle"
	"github.com/specialistvlad/wordgrid/internal/source"
)

// ErrInvalidPuzzle is returned when a puzzle block is incomplete or ambiguous.
var ErrInvalidPuzzle = errors.New("invalid puzzle definition")

// Puzzle is one resolved puzzle block.
type Puzzle struct {
	Name string
	// File is the manifest that declared the puzzle.
	File      string
	GridPath  string
	Rows      []string
	WordsPath string
	Words     []string
}

// fileRoot decodes the top level of a manifest file.
type fileRoot struct {
	Puzzles []*puzzleBlock `hcl:"puzzle,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type puzzleBlock struct {
	Name     string   `hcl:"name,label"`
	Grid     *string  `hcl:"grid,optional"`
	Rows     []string `hcl:"rows,optional"`
	Words    *string  `hcl:"words,optional"`
	WordList []string `hcl:"word_list,optional"`
}

// Load parses every manifest found at paths. A path may be a single file or
// a directory, which is walked for .hcl files. Puzzles are returned in file
// order, then declaration order.
func Load(ctx context.Context, paths ...string) ([]*Puzzle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	seen := make(map[string]string)
	var puzzles []*Puzzle

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve manifest path %s: %w", file, err)
		}

		hclFile, diags := parser.ParseHCLFile(abs)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalContext(abs), &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Puzzles {
			if prev, dup := seen[block.Name]; dup {
				return nil, fmt.Errorf("%w: puzzle %q in %s is already declared in %s", ErrInvalidPuzzle, block.Name, file, prev)
			}
			seen[block.Name] = file

			p, err := translate(abs, block)
			if err != nil {
				return nil, err
			}
			puzzles = append(puzzles, p)
		}
	}

	logger.Debug("Manifest loading complete.", "puzzles", len(puzzles))
	return puzzles, nil
}

func translate(file string, b *puzzleBlock) (*Puzzle, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: puzzle %q in %s: %s", ErrInvalidPuzzle, b.Name, file, fmt.Sprintf(format, args...))
	}

	hasGrid := b.Grid != nil && *b.Grid != ""
	switch {
	case hasGrid && len(b.Rows) > 0:
		return nil, invalid("set either grid or rows, not both")
	case !hasGrid && len(b.Rows) == 0:
		return nil, invalid("one of grid or rows is required")
	}

	hasWords := b.Words != nil && *b.Words != ""
	if !hasWords && len(b.WordList) == 0 {
		return nil, invalid("one of words or word_list is required")
	}

	dir := filepath.Dir(file)
	p := &Puzzle{
		Name: b.Name,
		File: file,
		Rows: b.Rows,
	}
	if hasGrid {
		p.GridPath = resolve(dir, *b.Grid)
	}
	if hasWords {
		p.WordsPath = resolve(dir, *b.Words)
	}
	for _, w := range b.WordList {
		if w = source.StripSpace(w); w != "" {
			p.Words = append(p.Words, w)
		}
	}
	return p, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// LoadInputs reads the puzzle's grid and assembles its word list: words from
// the words file first, then the inline word_list.
func (p *Puzzle) LoadInputs() (*puzzle.Grid, []string, error) {
	var (
		g   *puzzle.Grid
		err error
	)
	if p.GridPath != "" {
		g, err = source.LoadGrid(p.GridPath)
	} else {
		g, err = puzzle.NewGrid(p.Rows)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("puzzle %q: %w", p.Name, err)
	}

	var words []string
	if p.WordsPath != "" {
		words, err = source.LoadWords(p.WordsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("puzzle %q: %w", p.Name, err)
		}
	}
	words = append(words, p.Words...)
	return g, words, nil
}

// evalContext exposes path, env and a few string functions to expressions.
func evalContext(file string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"path": cty.ObjectVal(map[string]cty.Value{
				"dir":  cty.StringVal(filepath.Dir(file)),
				"file": cty.StringVal(file),
			}),
			"env": envValue(os.Environ()),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}

func envValue(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(vars)
}
