package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/specialistvlad/wordgrid/internal/export"
	"github.com/specialistvlad/wordgrid/internal/puzzle"
	"github.com/specialistvlad/wordgrid/internal/source"
	"github.com/specialistvlad/wordgrid/internal/testutil"
	"github.com/specialistvlad/wordgrid/internal/vision"
)

const (
	gridCSV = `
		CAT
		ABC
		TTT
	`
	wordsCSV = `
		CAT
		TAC
		DOG
	`
)

// fakePublisher records every report it is given.
type fakePublisher struct {
	mu      sync.Mutex
	reports []*export.Report
	closed  bool
	err     error
}

func (p *fakePublisher) Publish(_ context.Context, r *export.Report) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.reports = append(p.reports, r)
	return nil
}

func (p *fakePublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

type fakeExtractor struct {
	extraction *vision.Extraction
	err        error
}

func (e *fakeExtractor) ExtractFile(context.Context, string) (*vision.Extraction, error) {
	return e.extraction, e.err
}

// runApp validates cfg, runs the app and returns stdout and the log output.
func runApp(t *testing.T, cfg Config, opts ...Option) (string, string, *App, error) {
	t.Helper()

	cfg.LogLevel = "debug"
	if cfg.RenderMode == "" {
		cfg.RenderMode = RenderPlain
	}
	valid, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a, err := NewApp(out, logs, valid, opts...)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	runErr := a.Run(context.Background())
	if os.Getenv("WORDGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
	return out.String(), logs.String(), a, runErr
}

func TestRun_FilesPlain(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"ws-1-puzzle.csv": gridCSV,
		"ws-1-list.csv":   wordsCSV,
	})

	out, logs, a, err := runApp(t, Config{
		PuzzlePath: filepath.Join(dir, "ws-1-puzzle.csv"),
		WordsPath:  filepath.Join(dir, "ws-1-list.csv"),
	})
	require.NoError(t, err)

	want := "\nPROBLEM:\nC A T \nA B C \nT T T \n" +
		"\nSOLUTION:\nC A T \nA B C \nT T T \n"
	assert.Equal(t, want, out)

	assert.Contains(t, logs, "Puzzle solved.")
	assert.Contains(t, logs, "puzzle=ws-1-puzzle")
	assert.Contains(t, logs, "Words not found.")
	assert.Contains(t, logs, "words=DOG")

	reports := a.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].Found)
	assert.Equal(t, 3, reports[0].Total)
	assert.Equal(t, "west", reports[0].Results[1].Direction)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"grid.csv":  gridCSV,
		"words.csv": wordsCSV,
	})
	cfg := Config{
		PuzzlePath: filepath.Join(dir, "grid.csv"),
		WordsPath:  filepath.Join(dir, "words.csv"),
		RenderMode: RenderNone,
	}

	_, _, seq, err := runApp(t, cfg)
	require.NoError(t, err)

	cfg.Workers = 3
	_, _, par, err := runApp(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, seq.Reports(), par.Reports())
}

func TestRun_ManifestWithExport(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"ws-1.csv": gridCSV,
		"puzzles.hcl": `
			puzzle "first" {
			  grid      = "ws-1.csv"
			  word_list = ["CAT"]
			}

			puzzle "second" {
			  rows      = ["AB", "CD"]
			  word_list = [upper("ad"), "ZZ"]
			}
		`,
	})
	outPath := filepath.Join(dir, "report.msgpack")
	pub := &fakePublisher{}

	_, _, _, err := runApp(t, Config{
		ManifestPath: filepath.Join(dir, "puzzles.hcl"),
		RenderMode:   RenderNone,
		OutPath:      outPath,
		OutFormat:    export.FormatMsgpack,
		PublishURL:   "http://localhost:3000",
	}, WithPublisher(func(context.Context, string, string) (Publisher, error) { return pub, nil }))
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var reports []*export.Report
	require.NoError(t, msgpack.Unmarshal(data, &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "first", reports[0].Puzzle)
	assert.Equal(t, "second", reports[1].Puzzle)
	assert.Equal(t, "south-east", reports[1].Results[0].Direction)
	assert.False(t, reports[1].Results[1].Found)

	require.Len(t, pub.reports, 2)
	assert.Equal(t, "first", pub.reports[0].Puzzle)
	assert.True(t, pub.closed)
}

func TestRun_TextRendererColours(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"grid.csv":  gridCSV,
		"words.csv": "CAT",
	})
	out, _, _, err := runApp(t, Config{
		PuzzlePath: filepath.Join(dir, "grid.csv"),
		WordsPath:  filepath.Join(dir, "words.csv"),
		RenderMode: RenderText,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "PROBLEM:")
	assert.Contains(t, out, "SOLUTION:")
}

func TestRun_GridImage(t *testing.T) {
	g, err := puzzle.NewGrid([]string{"CAT", "ABC", "TTT"})
	require.NoError(t, err)

	testCases := []struct {
		name      string
		extractor *fakeExtractor
		wordsFile bool
		wantErr   error
		wantWords []string
	}{
		{
			name:      "words from image",
			extractor: &fakeExtractor{extraction: &vision.Extraction{Grid: g, Words: []string{"CAT"}}},
			wantWords: []string{"CAT"},
		},
		{
			name:      "words file wins",
			extractor: &fakeExtractor{extraction: &vision.Extraction{Grid: g, Words: []string{"CAT"}}},
			wordsFile: true,
			wantWords: []string{"CAT", "TAC", "DOG"},
		},
		{
			name:      "no words anywhere",
			extractor: &fakeExtractor{extraction: &vision.Extraction{Grid: g}},
			wantErr:   source.ErrNoWords,
		},
		{
			name:      "extraction fails",
			extractor: &fakeExtractor{err: vision.ErrEmptyResponse},
			wantErr:   vision.ErrEmptyResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, map[string]string{"words.csv": wordsCSV})
			cfg := Config{
				GridImagePath: filepath.Join(dir, "photo.jpg"),
				GCPProject:    "test-project",
				RenderMode:    RenderNone,
			}
			if tc.wordsFile {
				cfg.WordsPath = filepath.Join(dir, "words.csv")
			}

			_, _, a, err := runApp(t, cfg, WithExtractor(func(context.Context, string, string) (Extractor, error) {
				return tc.extractor, nil
			}))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			reports := a.Reports()
			require.Len(t, reports, 1)
			assert.Equal(t, "photo", reports[0].Puzzle)

			var words []string
			for _, r := range reports[0].Results {
				words = append(words, r.Word)
			}
			assert.Equal(t, tc.wantWords, words)
		})
	}
}

func TestRun_Errors(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"grid.csv":   gridCSV,
		"ragged.csv": "CAT\nAB\nTTT",
		"words.csv":  wordsCSV,
		"bad.hcl":    `puzzle "x" {`,
	})

	testCases := []struct {
		name    string
		cfg     Config
		opts    []Option
		wantErr error
		substr  string
	}{
		{
			name:    "ragged grid",
			cfg:     Config{PuzzlePath: filepath.Join(dir, "ragged.csv"), WordsPath: filepath.Join(dir, "words.csv")},
			wantErr: puzzle.ErrNotSquare,
		},
		{
			name:   "missing words file",
			cfg:    Config{PuzzlePath: filepath.Join(dir, "grid.csv"), WordsPath: filepath.Join(dir, "nope.csv")},
			substr: "nope.csv",
		},
		{
			name:   "broken manifest",
			cfg:    Config{ManifestPath: filepath.Join(dir, "bad.hcl")},
			substr: "failed to load manifest",
		},
		{
			name: "publisher unreachable",
			cfg: Config{
				PuzzlePath: filepath.Join(dir, "grid.csv"),
				WordsPath:  filepath.Join(dir, "words.csv"),
				PublishURL: "http://localhost:1",
			},
			opts: []Option{WithPublisher(func(context.Context, string, string) (Publisher, error) {
				return nil, errors.New("connection refused")
			})},
			substr: "failed to connect publisher",
		},
		{
			name: "publish fails",
			cfg: Config{
				PuzzlePath: filepath.Join(dir, "grid.csv"),
				WordsPath:  filepath.Join(dir, "words.csv"),
				PublishURL: "http://localhost:1",
			},
			opts: []Option{WithPublisher(func(context.Context, string, string) (Publisher, error) {
				return &fakePublisher{err: errors.New("boom")}, nil
			})},
			substr: "failed to publish report",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.RenderMode = RenderNone
			_, _, _, err := runApp(t, tc.cfg, tc.opts...)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.substr != "" {
				assert.Contains(t, err.Error(), tc.substr)
			}
		})
	}
}

func TestRun_RendererError(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"grid.csv":  gridCSV,
		"words.csv": wordsCSV,
	})
	_, _, _, err := runApp(t, Config{
		PuzzlePath: filepath.Join(dir, "grid.csv"),
		WordsPath:  filepath.Join(dir, "words.csv"),
	}, WithRenderer(failingRenderer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render problem")
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, string, *puzzle.Solution) error {
	return errors.New("terminal gone")
}

func TestRun_JSONExport(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"grid.csv":  gridCSV,
		"words.csv": wordsCSV,
	})
	outPath := filepath.Join(dir, "out.json")
	_, _, _, err := runApp(t, Config{
		PuzzlePath: filepath.Join(dir, "grid.csv"),
		WordsPath:  filepath.Join(dir, "words.csv"),
		RenderMode: RenderNone,
		OutPath:    outPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var reports []map[string]any
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 1)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))
	assert.EqualValues(t, 3, reports[0]["size"])
}
