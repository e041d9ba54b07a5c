package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/wordgrid/internal/ctxlog"
	"github.com/specialistvlad/wordgrid/internal/export"
	"github.com/specialistvlad/wordgrid/internal/manifest"
	"github.com/specialistvlad/wordgrid/internal/puzzle"
	"github.com/specialistvlad/wordgrid/internal/search"
	"github.com/specialistvlad/wordgrid/internal/source"
)

const (
	titleProblem  = "PROBLEM"
	titleSolution = "SOLUTION"
)

// job is one puzzle to solve.
type job struct {
	name string
	load func(ctx context.Context) (*puzzle.Grid, []string, error)
}

// Run solves every configured puzzle. When the health check server is
// enabled it keeps serving the results until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer a.closeHealthcheckServer()
	}

	jobs, err := a.jobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		a.logger.Warn("No puzzles found, nothing to solve.")
	}

	var pub Publisher
	if a.config.PublishURL != "" {
		pub, err = a.dialPublisher(ctx, a.config.PublishURL, a.config.PublishNamespace)
		if err != nil {
			return fmt.Errorf("failed to connect publisher: %w", err)
		}
		defer pub.Close()
	}

	for _, j := range jobs {
		report, err := a.solve(ctx, j, pub)
		if err != nil {
			return fmt.Errorf("failed to solve puzzle: %w", err)
		}
		a.addReport(report)
	}

	if a.config.OutPath != "" {
		if err := export.WriteFile(a.config.OutPath, a.config.OutFormat, a.Reports()); err != nil {
			return err
		}
		a.logger.Info("Report written.", "path", a.config.OutPath, "format", a.config.OutFormat)
	}

	if a.httpServer != nil {
		a.logger.Info("Serving solutions until interrupted.")
		<-ctx.Done()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// jobs resolves the puzzles named by the manifest or by the input flags.
func (a *App) jobs(ctx context.Context) ([]job, error) {
	cfg := a.config
	if cfg.ManifestPath != "" {
		puzzles, err := manifest.Load(ctx, cfg.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		jobs := make([]job, 0, len(puzzles))
		for _, p := range puzzles {
			jobs = append(jobs, job{
				name: p.Name,
				load: func(context.Context) (*puzzle.Grid, []string, error) { return p.LoadInputs() },
			})
		}
		return jobs, nil
	}

	if cfg.GridImagePath != "" {
		return []job{{name: baseName(cfg.GridImagePath), load: a.loadFromImage}}, nil
	}
	return []job{{name: baseName(cfg.PuzzlePath), load: a.loadFromFiles}}, nil
}

func (a *App) loadFromFiles(context.Context) (*puzzle.Grid, []string, error) {
	g, err := source.LoadGrid(a.config.PuzzlePath)
	if err != nil {
		return nil, nil, err
	}
	words, err := source.LoadWords(a.config.WordsPath)
	if err != nil {
		return nil, nil, err
	}
	return g, words, nil
}

// loadFromImage reads the grid from a photo. A words file takes precedence
// over any word list printed in the photo.
func (a *App) loadFromImage(ctx context.Context) (*puzzle.Grid, []string, error) {
	ex, err := a.newExtractor(ctx, a.config.GCPProject, a.config.GCPRegion)
	if err != nil {
		return nil, nil, err
	}
	extraction, err := ex.ExtractFile(ctx, a.config.GridImagePath)
	if err != nil {
		return nil, nil, err
	}
	if a.config.WordsPath != "" {
		words, err := source.LoadWords(a.config.WordsPath)
		if err != nil {
			return nil, nil, err
		}
		return extraction.Grid, words, nil
	}
	if len(extraction.Words) == 0 {
		return nil, nil, fmt.Errorf("no word list in image and no words file given: %w", source.ErrNoWords)
	}
	return extraction.Grid, extraction.Words, nil
}

// solve runs one puzzle through render, search, render, publish.
func (a *App) solve(ctx context.Context, j job, pub Publisher) (*export.Report, error) {
	logger := ctxlog.FromContext(ctx).With("puzzle", j.name)
	ctx = ctxlog.WithLogger(ctx, logger)

	g, words, err := j.load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Puzzle loaded.", "size", g.Size(), "words", len(words))

	if err := a.renderer.Render(ctx, titleProblem, problem(g, words)); err != nil {
		return nil, fmt.Errorf("failed to render problem: %w", err)
	}

	engine := search.New(g)
	solved := puzzle.NewSolvedSet()
	var sol *puzzle.Solution
	if a.config.Workers > 1 {
		sol, err = engine.SolveParallel(ctx, words, a.config.Workers, solved)
		if err != nil {
			return nil, err
		}
	} else {
		sol = engine.Solve(words, solved)
	}

	if err := a.renderer.Render(ctx, titleSolution, sol); err != nil {
		return nil, fmt.Errorf("failed to render solution: %w", err)
	}

	logger.Info("Puzzle solved.", "found", sol.FoundCount(), "total", len(sol.Results))
	if missing := sol.Missing(); len(missing) > 0 {
		logger.Warn("Words not found.", "words", strings.Join(missing, ","))
	}

	report := export.NewReport(j.name, sol)
	if pub != nil {
		if err := pub.Publish(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to publish report: %w", err)
		}
		logger.Debug("Report published.")
	}
	return report, nil
}

// problem is the unsolved view of a puzzle.
func problem(g *puzzle.Grid, words []string) *puzzle.Solution {
	results := make([]puzzle.FindResult, len(words))
	for i, w := range words {
		results[i] = puzzle.NotFound(w)
	}
	return &puzzle.Solution{Grid: g, Results: results, Solved: puzzle.NewSolvedSet()}
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
