package audiveris

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/S0urC10ud/audiveris/internal/report"
	"github.com/S0urC10ud/audiveris/internal/score"
)

// RhythmDeriver is the upstream collaborator that rebuilds chords, time
// slots and voices for a single measure. The engine discards and rederives a
// measure's rhythm data by calling it; voice-identity refinement then runs
// on the result.
type RhythmDeriver interface {
	Derive(ctx context.Context, measure *score.Measure) error
}

// DeriveFunc adapts a function to the RhythmDeriver interface. A nil
// function derives nothing, for scores whose measures already carry derived
// rhythm data.
type DeriveFunc func(ctx context.Context, measure *score.Measure) error

// Derive calls f when non-nil.
func (f DeriveFunc) Derive(ctx context.Context, measure *score.Measure) error {
	if f == nil {
		return nil
	}
	return f(ctx, measure)
}

// Engine drives impact-classified, incremental reprocessing of rhythm data
// over one score: it rederives the minimal set of regions after an edit
// batch and re-runs voice unification for the affected boundaries only.
type Engine struct {
	score   *score.Score
	deriver RhythmDeriver
	linker  SlurLinker
	reports *report.Store
	logger  *slog.Logger

	// parallel enables per-logical-part concurrency in the page and score
	// refinement passes.
	parallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallel controls per-logical-part parallel refinement. Logical parts
// own disjoint measures, so their passes never contend on a voice ID.
// Default is serial.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.parallel = parallel
	}
}

// WithLinker sets the cross-page slur matching collaborator used by
// score-level refinement. Default is the pitch-based reference linker.
func WithLinker(linker SlurLinker) Option {
	return func(e *Engine) {
		e.linker = linker
	}
}

// WithReport records one row per applied batch into the given session log.
func WithReport(store *report.Store) Option {
	return func(e *Engine) {
		e.reports = store
	}
}

// WithLogger sets the structured logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine over the given score and rhythm deriver.
func New(sc *score.Score, deriver RhythmDeriver, opts ...Option) *Engine {
	e := &Engine{
		score:   sc,
		deriver: deriver,
		linker:  NewPitchLinker(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score returns the score the engine operates on.
func (e *Engine) Score() *score.Score {
	return e.score
}

// Apply classifies an edit batch and reprocesses exactly what it
// invalidates: the whole page together with the page breaks adjacent to it,
// or each impacted stack with its adjacent boundaries. Voice IDs in untouched stacks are left as they were. Returns
// the impact decision, so the caller can decide what to re-render, and the
// number of ID swaps performed.
func (e *Engine) Apply(ctx context.Context, batch *score.EditBatch) (Impact, int, error) {
	start := time.Now()
	impact := Classify(batch)
	e.logger.Debug("rhythms impact", "batch", batch.ID, "mode", batch.Mode.String(),
		"impact", impact.String())

	swaps := 0
	if impact.WholePage {
		n, err := e.ProcessPage(ctx, impact.Page)
		if err != nil {
			return impact, swaps, err
		}
		// Rederivation reset the page's voices, so ties crossing its page
		// breaks must be re-applied as well.
		swaps = n + e.refinePageBoundaries(impact.Page)
	} else {
		for _, stack := range impact.Stacks {
			n, err := e.ReprocessStack(ctx, stack)
			if err != nil {
				return impact, swaps, err
			}
			swaps += n
		}
	}

	if e.reports != nil {
		_, err := e.reports.InsertRun(&report.Run{
			BatchID:   batch.ID,
			Mode:      batch.Mode.String(),
			WholePage: impact.WholePage,
			Stacks:    len(impact.Stacks),
			Swaps:     swaps,
			Duration:  time.Since(start),
			CreatedAt: time.Now(),
		})
		if err != nil {
			return impact, swaps, fmt.Errorf("record run: %w", err)
		}
	}
	return impact, swaps, nil
}

// ProcessPage fully rederives rhythm data for every measure of the page,
// then re-runs voice unification at system and page level. Returns the
// number of ID swaps performed during unification.
func (e *Engine) ProcessPage(ctx context.Context, page *score.Page) (int, error) {
	if err := e.derivePage(ctx, page); err != nil {
		return 0, err
	}

	swaps := 0
	for _, system := range page.Systems {
		swaps += RefineSystem(system)
	}
	swaps += e.refinePage(page)
	return swaps, nil
}

// ProcessScore runs the full pipeline over every page, then connects voices
// across page boundaries. Returns the number of ID swaps performed.
func (e *Engine) ProcessScore(ctx context.Context) (int, error) {
	swaps := 0
	for _, page := range e.score.Pages {
		n, err := e.ProcessPage(ctx, page)
		if err != nil {
			return swaps, err
		}
		swaps += n
	}
	swaps += e.RefineScore()
	return swaps, nil
}

// RefineScore connects voices across the pages of the engine's score using
// its configured linker. Returns the count of modifications made.
func (e *Engine) RefineScore() int {
	modifs := RefineScore(e.score, e.linker, nil)
	e.logger.Debug("score refinement done", "modifs", modifs)
	return modifs
}

// refinePageBoundaries re-runs score-level unification for the page breaks
// adjacent to the given page: previous page into this one, this one into the
// next. The page selection limits RefineScore to exactly those boundaries.
func (e *Engine) refinePageBoundaries(page *score.Page) int {
	var selected []*score.Page
	if prev := e.score.Page(page.Number - 1); prev != nil {
		selected = append(selected, prev)
	}
	selected = append(selected, page)
	if next := e.score.Page(page.Number + 1); next != nil {
		selected = append(selected, next)
	}
	if len(selected) == 1 {
		return 0 // single-page score, no page break to refine
	}
	return RefineScore(e.score, e.linker, selected)
}

// ReprocessStack rederives rhythm data for the measures of a single stack,
// then re-runs within-system unification for the boundaries adjacent to that
// stack in each part. This is the incrementality guarantee: no other stack
// is touched. Returns the number of ID swaps performed.
func (e *Engine) ReprocessStack(ctx context.Context, stack *score.MeasureStack) (int, error) {
	for _, measure := range stack.Measures {
		if err := e.deriver.Derive(ctx, measure); err != nil {
			return 0, fmt.Errorf("derive stack #%d: %w", stack.Index+1, err)
		}
	}

	prev := stack.PrevSibling()
	next := stack.NextSibling()

	swaps := 0
	for _, part := range stack.System.Parts {
		measure := stack.MeasureFor(part)
		if measure == nil {
			continue
		}

		// Boundary with the previous stack: the rederived measure may need
		// renaming against its stable predecessor.
		var prevMeasure *score.Measure
		if prev != nil {
			prevMeasure = prev.MeasureFor(part)
		}
		swaps += refineMeasure(measure, prevMeasure)

		// Boundary with the next stack: the untouched successor may have
		// been tied to IDs that just moved.
		if next != nil {
			if nextMeasure := next.MeasureFor(part); nextMeasure != nil {
				swaps += refineMeasure(nextMeasure, measure)
			}
		}
	}
	return swaps, nil
}

// derivePage rederives every measure of the page through the deriver,
// serially or in parallel per part.
func (e *Engine) derivePage(ctx context.Context, page *score.Page) error {
	if e.parallel {
		return e.derivePageParallel(ctx, page)
	}
	for _, system := range page.Systems {
		for _, stack := range system.Stacks {
			for _, measure := range stack.Measures {
				if err := e.deriver.Derive(ctx, measure); err != nil {
					return fmt.Errorf("derive page %d: %w", page.Number, err)
				}
			}
		}
	}
	return nil
}
