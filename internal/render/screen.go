package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

const (
	gridTop   = 2
	cellWidth = 2
)

// Screen draws the grid full-screen and, when waiting is enabled, holds each
// view until a key is pressed.
type Screen struct {
	screen   tcell.Screen
	solved   tcell.Style
	unsolved tcell.Style
	plain    tcell.Style
	wait     bool

	pollOnce sync.Once
	events   chan tcell.Event
}

// NewScreen wraps an initialised tcell screen. Pass nil to open the terminal.
func NewScreen(s tcell.Screen, p Palette, wait bool) (*Screen, error) {
	solved, unsolved, err := p.swatches()
	if err != nil {
		return nil, err
	}
	if s == nil {
		if s, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("failed to open terminal screen: %w", err)
		}
		if err = s.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialise terminal screen: %w", err)
		}
	}
	return &Screen{
		screen:   s,
		solved:   tcell.StyleDefault.Foreground(solved.screen).Bold(true),
		unsolved: tcell.StyleDefault.Foreground(unsolved.screen),
		plain:    tcell.StyleDefault,
		wait:     wait,
		events:   make(chan tcell.Event, 16),
	}, nil
}

// Draw paints the title, the grid and a status line, and shows the result.
func (s *Screen) Draw(title string, sol *puzzle.Solution) {
	s.screen.Clear()
	s.text(0, 0, title, s.plain)

	n := sol.Grid.Size()
	for r, row := range sol.Grid.Rows() {
		col := 0
		for _, ch := range row {
			style := s.unsolved
			if sol.IsSolved(r, col) {
				style = s.solved
			}
			s.screen.SetContent(col*cellWidth, gridTop+r, ch, nil, style)
			col++
		}
	}

	status := fmt.Sprintf("found %d/%d words", sol.FoundCount(), len(sol.Results))
	if s.wait {
		status += " - press any key"
	}
	s.text(0, gridTop+n+1, status, s.plain)
	s.screen.Show()
}

func (s *Screen) text(x, y int, str string, style tcell.Style) {
	for _, ch := range str {
		s.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Render implements Renderer. With waiting enabled it returns after the next
// key press, or with ctx's error if ctx ends first.
func (s *Screen) Render(ctx context.Context, title string, sol *puzzle.Solution) error {
	s.Draw(title, sol)
	if !s.wait {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.pollOnce.Do(func() { go s.poll() })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.events:
			if !ok {
				return nil
			}
			switch ev.(type) {
			case *tcell.EventKey:
				return nil
			case *tcell.EventResize:
				s.screen.Sync()
				s.Draw(title, sol)
			}
		}
	}
}

// poll forwards terminal events until the screen is finalised.
func (s *Screen) poll() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			close(s.events)
			return
		}
		select {
		case s.events <- ev:
		default:
		}
	}
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}
