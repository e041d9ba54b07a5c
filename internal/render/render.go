// Package render draws a puzzle grid with every cell in one of two visual
// states, solved or unsolved. Renderers only read the solution; they never
// decide which cells are solved.
package render

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

// Renderer draws one titled view of a solution. The problem view is a
// solution with an empty solved set.
type Renderer interface {
	Render(ctx context.Context, title string, sol *puzzle.Solution) error
}

// ErrUnknownColor is returned for a colour name missing from the palette table.
var ErrUnknownColor = errors.New("unknown color")

// swatch is one named colour in every output flavour.
type swatch struct {
	text   color.Color
	screen tcell.Color
}

var swatches = map[string]swatch{
	"black":   {color.FgBlack, tcell.ColorBlack},
	"red":     {color.FgRed, tcell.ColorRed},
	"green":   {color.FgGreen, tcell.ColorGreen},
	"yellow":  {color.FgYellow, tcell.ColorYellow},
	"blue":    {color.FgBlue, tcell.ColorBlue},
	"magenta": {color.FgMagenta, tcell.ColorFuchsia},
	"cyan":    {color.FgCyan, tcell.ColorAqua},
	"white":   {color.FgWhite, tcell.ColorWhite},
	"gray":    {color.FgDarkGray, tcell.ColorGray},
	"default": {color.FgDefault, tcell.ColorDefault},
}

// ColorNames lists the accepted colour names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(swatches))
	for name := range swatches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (swatch, error) {
	s, ok := swatches[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return swatch{}, fmt.Errorf("%w %q: want one of %s", ErrUnknownColor, name, strings.Join(ColorNames(), ", "))
	}
	return s, nil
}

// Palette names the colours of solved and unsolved cells.
type Palette struct {
	Solved   string
	Unsolved string
}

// DefaultPalette draws solved cells red and the rest blue.
var DefaultPalette = Palette{Solved: "red", Unsolved: "blue"}

// Validate reports the first colour name that is not recognised.
func (p Palette) Validate() error {
	if _, err := lookup(p.Solved); err != nil {
		return fmt.Errorf("solved: %w", err)
	}
	if _, err := lookup(p.Unsolved); err != nil {
		return fmt.Errorf("unsolved: %w", err)
	}
	return nil
}

func (p Palette) swatches() (solved, unsolved swatch, err error) {
	if err = p.Validate(); err != nil {
		return swatch{}, swatch{}, err
	}
	solved, _ = lookup(p.Solved)
	unsolved, _ = lookup(p.Unsolved)
	return solved, unsolved, nil
}

// Nop discards every view.
type Nop struct{}

// Render implements Renderer.
func (Nop) Render(context.Context, string, *puzzle.Solution) error { return nil }
