package audiveris

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/S0urC10ud/audiveris/internal/score"
)

// derivePageParallel rederives the page's measures with one goroutine per
// part. Parts own disjoint measures, so derivation never contends; the
// first failure cancels the derived context so remaining work stops early.
func (e *Engine) derivePageParallel(ctx context.Context, page *score.Page) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, system := range page.Systems {
		for _, part := range system.Parts {
			part := part
			g.Go(func() error {
				for _, measure := range part.Measures {
					if err := e.deriver.Derive(gctx, measure); err != nil {
						return fmt.Errorf("derive page %d part %d: %w",
							page.Number, part.Logical.ID, err)
					}
				}
				return nil
			})
		}
	}
	return g.Wait()
}

// refinePage runs page-level unification, per logical part. With parallel
// mode on, parts run concurrently: each logical part's pass only swaps IDs
// in measures that part owns, so no measure is shared between goroutines.
func (e *Engine) refinePage(page *score.Page) int {
	if !e.parallel {
		return RefinePage(page)
	}

	parts := page.LogicalParts()
	counts := make([]int, len(parts))

	var g errgroup.Group
	for i, lp := range parts {
		i, lp := i, lp
		g.Go(func() error {
			counts[i] = refinePagePart(page, lp)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	swaps := 0
	for _, n := range counts {
		swaps += n
	}
	return swaps
}
