package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/specialistvlad/wordgrid/internal/puzzle"
	"github.com/specialistvlad/wordgrid/internal/search"
)

func solved(t *testing.T) *puzzle.Solution {
	t.Helper()
	g, err := puzzle.NewGrid([]string{"CAT", "XBX", "XXT"})
	require.NoError(t, err)
	return search.Solve(g, []string{"CAT", "DOG"}, nil)
}

func TestNewReport(t *testing.T) {
	r := NewReport("ws-1", solved(t))

	assert.Equal(t, "ws-1", r.Puzzle)
	assert.Equal(t, 3, r.Size)
	assert.Equal(t, []string{"CAT", "XBX", "XXT"}, r.Rows)
	assert.Equal(t, 1, r.Found)
	assert.Equal(t, 2, r.Total)
	require.Len(t, r.Results, 2)

	assert.Equal(t, Record{
		Word:      "CAT",
		Found:     true,
		Direction: "east",
		Coords:    []puzzle.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	}, r.Results[0])
	assert.Equal(t, Record{Word: "DOG"}, r.Results[1])
	assert.Len(t, r.Solved, 3)
}

func TestWrite_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, "JSON", []*Report{NewReport("ws-1", solved(t))}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "ws-1", got[0]["puzzle"])
	assert.EqualValues(t, 1, got[0]["found"])
	assert.Contains(t, buf.String(), "\n  ")

	results := got[0]["results"].([]any)
	missing := results[1].(map[string]any)
	assert.NotContains(t, missing, "direction")
	assert.NotContains(t, missing, "coords")
}

func TestWrite_Msgpack(t *testing.T) {
	want := NewReport("ws-1", solved(t))
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, FormatMsgpack, []*Report{want}))

	var got []*Report
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, want.Puzzle, got[0].Puzzle)
	assert.Equal(t, want.Results[0], got[0].Results[0])
}

func TestWrite_EmptyJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteFile(path, FormatJSON, []*Report{NewReport("a", solved(t))}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"puzzle": "a"`)

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "out.json"), FormatJSON, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create report file")
}
