package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/wordgrid/internal/app"
	"github.com/specialistvlad/wordgrid/internal/export"
	"github.com/specialistvlad/wordgrid/internal/render"
	"github.com/specialistvlad/wordgrid/internal/vision"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("wordgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
wordgrid - Finds words in a square letter grid.

Usage:
  wordgrid --puzzle GRID.csv --words WORDS.csv [options]
  wordgrid --manifest PUZZLES.hcl|DIR [options]
  wordgrid --grid-image PHOTO.jpg --gcp-project ID [--words WORDS.csv] [options]

The first field of each CSV record is one grid row, or one word.

Options:
`)
		flagSet.PrintDefaults()
	}

	puzzleFlag := flagSet.String("puzzle", "", "Path to the grid CSV file.")
	pFlag := flagSet.String("p", "", "Path to the grid CSV file (shorthand).")
	wordsFlag := flagSet.String("words", "", "Path to the word list CSV file.")
	wFlag := flagSet.String("w", "", "Path to the word list CSV file (shorthand).")
	manifestFlag := flagSet.String("manifest", "", "Path to an HCL puzzle manifest or a directory of them.")
	mFlag := flagSet.String("m", "", "Path to an HCL puzzle manifest or a directory of them (shorthand).")
	imageFlag := flagSet.String("grid-image", "", "Photo of a printed puzzle to read the grid from.")

	renderFlag := flagSet.String("render", app.RenderText, "Render mode. Options: "+quoted(app.RenderModes)+".")
	solvedFlag := flagSet.String("solved-color", render.DefaultPalette.Solved, "Colour of solved cells. Options: "+strings.Join(render.ColorNames(), ", ")+".")
	unsolvedFlag := flagSet.String("unsolved-color", render.DefaultPalette.Unsolved, "Colour of unsolved cells.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent search workers. 1 searches sequentially.")

	outFlag := flagSet.String("out", "", "Write solution reports to this file.")
	outFormatFlag := flagSet.String("out-format", export.FormatJSON, "Report format. Options: "+quoted(export.Formats)+".")
	publishURLFlag := flagSet.String("publish-url", "", "Socket.IO server to push solution reports to.")
	publishNSFlag := flagSet.String("publish-namespace", "/", "Socket.IO namespace for published reports.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	gcpProjectFlag := flagSet.String("gcp-project", "", "Google Cloud project for grid-image extraction.")
	gcpRegionFlag := flagSet.String("gcp-region", vision.DefaultRegion, "Vertex AI region for grid-image extraction.")

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 0 {
		return nil, false, usageError("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))
	}

	puzzlePath := firstNonEmpty(*puzzleFlag, *pFlag)
	wordsPath := firstNonEmpty(*wordsFlag, *wFlag)
	manifestPath := firstNonEmpty(*manifestFlag, *mFlag)

	if manifestPath == "" && *imageFlag == "" && (puzzlePath == "" || wordsPath == "") {
		slog.Debug("No puzzle source provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PuzzlePath:       puzzlePath,
		WordsPath:        wordsPath,
		ManifestPath:     manifestPath,
		GridImagePath:    *imageFlag,
		RenderMode:       *renderFlag,
		SolvedColor:      *solvedFlag,
		UnsolvedColor:    *unsolvedFlag,
		Workers:          *workersFlag,
		OutPath:          *outFlag,
		OutFormat:        *outFormatFlag,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		HealthcheckPort:  *healthPortFlag,
		GCPProject:       *gcpProjectFlag,
		GCPRegion:        *gcpRegionFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func quoted(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = "'" + v + "'"
	}
	return strings.Join(out, ", ")
}
