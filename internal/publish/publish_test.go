package publish

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/wordgrid/internal/export"
	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

func TestSplitURL(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		wantBase string
		wantPath string
		wantErr  bool
	}{
		{name: "origin only", raw: "http://localhost:3000", wantBase: "http://localhost:3000"},
		{name: "trailing slash", raw: "http://localhost:3000/", wantBase: "http://localhost:3000"},
		{name: "custom path", raw: "https://example.com/live/socket.io", wantBase: "https://example.com", wantPath: "/live/socket.io"},
		{name: "relative", raw: "localhost:3000", wantErr: true},
		{name: "no host", raw: "/socket.io", wantErr: true},
		{name: "bad escape", raw: "http://%zz", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base, path, err := splitURL(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBase, base)
			assert.Equal(t, tc.wantPath, path)
		})
	}
}

func TestPayload(t *testing.T) {
	report := &export.Report{
		Puzzle: "ws-1",
		Size:   3,
		Found:  1,
		Total:  1,
		Results: []export.Record{{
			Word:      "CAT",
			Found:     true,
			Direction: "east",
			Coords:    []puzzle.Coord{{Row: 0, Col: 0}},
		}},
	}

	got, err := payload(report)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", got["puzzle"])
	assert.EqualValues(t, 3, got["size"])

	results := got["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "east", first["direction"])
	coords := first["coords"].([]any)
	assert.Equal(t, map[string]any{"row": float64(0), "col": float64(0)}, coords[0])
}

func TestNotify_KeepsFirstOutcome(t *testing.T) {
	ch := make(chan error, 1)
	refused := errors.New("refused")

	done := make(chan struct{})
	go func() {
		defer close(done)
		notify(ch, refused)
		notify(ch, nil)
		notify(ch, errors.New("late"))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a full channel")
	}
	assert.Equal(t, refused, <-ch)
	assert.Empty(t, ch)
}

func TestDial_InvalidURL(t *testing.T) {
	_, err := Dial(context.Background(), "not a url", "/", time.Second)
	require.Error(t, err)
}
