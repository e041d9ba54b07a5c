package render

import (
	"bufio"
	"context"
	"io"

	"github.com/gookit/color"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

// Text prints the grid as rows of space-separated characters.
type Text struct {
	w        io.Writer
	plain    bool
	solved   color.Color
	unsolved color.Color
}

// NewText creates a Text renderer writing to w. A plain renderer emits no
// escape codes at all.
func NewText(w io.Writer, p Palette, plain bool) (*Text, error) {
	solved, unsolved, err := p.swatches()
	if err != nil {
		return nil, err
	}
	return &Text{w: w, plain: plain, solved: solved.text, unsolved: unsolved.text}, nil
}

// Render implements Renderer.
func (t *Text) Render(ctx context.Context, title string, sol *puzzle.Solution) error {
	bw := bufio.NewWriter(t.w)
	if title != "" {
		bw.WriteString("\n" + title + ":\n")
	}

	for r, row := range sol.Grid.Rows() {
		col := 0
		for _, ch := range row {
			bw.WriteString(t.cell(string(ch), sol.IsSolved(r, col)))
			bw.WriteByte(' ')
			col++
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (t *Text) cell(s string, solved bool) string {
	switch {
	case t.plain:
		return s
	case solved:
		return t.solved.Sprint(s)
	default:
		return t.unsolved.Sprint(s)
	}
}
