package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/wordgrid/internal/export"
	"github.com/specialistvlad/wordgrid/internal/render"
)

// Render modes.
const (
	RenderText   = "text"
	RenderPlain  = "plain"
	RenderScreen = "screen"
	RenderNone   = "none"
)

// RenderModes lists the accepted render modes.
var RenderModes = []string{RenderText, RenderPlain, RenderScreen, RenderNone}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PuzzlePath    string // csv grid
	WordsPath     string // csv word list
	ManifestPath  string // hcl files
	GridImagePath string // photo of a printed puzzle

	RenderMode    string
	SolvedColor   string
	UnsolvedColor string
	Workers       int

	OutPath   string
	OutFormat string

	PublishURL       string
	PublishNamespace string

	HealthcheckPort int

	GCPProject string
	GCPRegion  string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	hasFlags := cfg.PuzzlePath != "" || cfg.WordsPath != "" || cfg.GridImagePath != ""
	switch {
	case cfg.ManifestPath != "" && hasFlags:
		return nil, errors.New("manifest cannot be combined with puzzle, words or grid-image")
	case cfg.ManifestPath == "" && cfg.PuzzlePath == "" && cfg.GridImagePath == "":
		return nil, errors.New("one of puzzle, grid-image or manifest is required")
	case cfg.PuzzlePath != "" && cfg.GridImagePath != "":
		return nil, errors.New("set either puzzle or grid-image, not both")
	case cfg.PuzzlePath != "" && cfg.WordsPath == "":
		return nil, errors.New("words is required together with puzzle")
	case cfg.GridImagePath != "" && cfg.GCPProject == "":
		return nil, errors.New("gcp-project is required to read a grid image")
	}

	if cfg.RenderMode == "" {
		cfg.RenderMode = RenderText
	}
	cfg.RenderMode = strings.ToLower(cfg.RenderMode)
	if !slices.Contains(RenderModes, cfg.RenderMode) {
		return nil, fmt.Errorf("invalid render mode %q: want one of %s", cfg.RenderMode, strings.Join(RenderModes, ", "))
	}

	if cfg.SolvedColor == "" {
		cfg.SolvedColor = render.DefaultPalette.Solved
	}
	if cfg.UnsolvedColor == "" {
		cfg.UnsolvedColor = render.DefaultPalette.Unsolved
	}
	if err := cfg.Palette().Validate(); err != nil {
		return nil, fmt.Errorf("invalid color: %w", err)
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.HealthcheckPort < 0 {
		return nil, fmt.Errorf("healthcheck port must not be negative, got %d", cfg.HealthcheckPort)
	}

	if cfg.OutFormat == "" {
		cfg.OutFormat = export.FormatJSON
	}
	cfg.OutFormat = strings.ToLower(cfg.OutFormat)
	if err := export.ValidateFormat(cfg.OutFormat); err != nil {
		return nil, err
	}

	if cfg.PublishNamespace == "" {
		cfg.PublishNamespace = "/"
	}
	return &cfg, nil
}

// Palette returns the configured cell colours.
func (c *Config) Palette() render.Palette {
	return render.Palette{Solved: c.SolvedColor, Unsolved: c.UnsolvedColor}
}
