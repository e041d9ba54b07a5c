package search

import (
	"context"
	"sync"

	"github.com/specialistvlad/wordgrid/internal/ctxlog"
	"github.com/specialistvlad/wordgrid/internal/puzzle"
)

// job is one word and its position in the word list.
type job struct {
	index int
	word  string
}

// SolveParallel searches for the words with a pool of workers. Workers never
// touch solved: each result is stored at its word-list index and the
// coordinates are merged into solved in word-list order once every worker has
// finished, so the outcome is identical to Solve.
//
// If ctx is cancelled before all words are searched, the partial results are
// discarded, solved is left untouched and ctx.Err() is returned.
func (e *Engine) SolveParallel(ctx context.Context, words []string, workers int, solved *puzzle.SolvedSet) (*puzzle.Solution, error) {
	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}
	if workers > len(words) {
		workers = max(len(words), 1)
	}
	logger.Debug("Parallel search starting.", "words", len(words), "workers", workers)

	results := make([]puzzle.FindResult, len(words))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for id := 1; id <= workers; id++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			e.worker(ctx, jobs, results, workerID)
		}(id)
	}

feed:
	for i, w := range words {
		select {
		case jobs <- job{index: i, word: w}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn("Parallel search cancelled.", "error", err)
		return nil, err
	}

	if solved == nil {
		solved = puzzle.NewSolvedSet()
	}
	for _, r := range results {
		solved.Add(r.Coords...)
	}
	logger.Debug("Parallel search finished.", "solved_cells", solved.Len())
	return &puzzle.Solution{Grid: e.grid, Results: results, Solved: solved}, nil
}

// worker is the processing loop for a single concurrent worker. Each index is
// written by exactly one worker, so results needs no lock.
func (e *Engine) worker(ctx context.Context, jobs <-chan job, results []puzzle.FindResult, workerID int) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	for j := range jobs {
		if ctx.Err() != nil {
			continue
		}
		results[j.index] = e.Find(j.word)
		logger.Debug("Word searched.", "word", j.word, "found", results[j.index].Found)
	}
}
