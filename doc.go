// Package audiveris connects the voices of a recognized musical score and
// harmonizes their IDs (and thus colors) within a stack, a system, a page or
// a whole score, and drives incremental reprocessing of rhythm data when the
// score is edited.
//
// # Pipeline
//
// Rhythm processing operates on an in-memory score model (pages, systems,
// parts, measure stacks, measures, voices): an upstream collaborator derives
// chords, time slots and voices per measure, then the refinement passes make
// voice identity coherent across container boundaries:
//
//  1. [RefineSystem] connects voices measure to measure within one system,
//     using tie slurs, same-voice annotations and preferred-ID hints.
//  2. [RefinePage] connects voices system to system within one page,
//     following slur extensions across system breaks.
//  3. [RefineScore] connects voices page to page, re-matching orphan slurs
//     across page breaks on the fly (cross-page ties are never stored).
//
// All three passes rename voices by swapping IDs, so the set of IDs within
// each measure is invariant: identity is permuted, never created or lost.
//
// # Incremental reprocessing
//
// When the score is edited, [Classify] maps an edit batch to its [Impact]:
// either the minimal set of measure stacks to rederive, or the whole page
// when an edit (a time signature, a slur, a system merge) can ripple across
// it. [Engine.Apply] consumes the impact, re-invokes rhythm derivation at
// that granularity, and re-runs unification only for the affected
// boundaries. Voice IDs in untouched stacks are left exactly as they were.
//
// # Usage
//
//	eng := audiveris.New(sc, deriver)
//	if _, err := eng.ProcessScore(ctx); err != nil { ... }
//
//	batch := audiveris.NewBatch(system, audiveris.ModeDo)
//	batch.Add(audiveris.EditOp{Kind: audiveris.KindHead, Action: audiveris.ActionAdd, Center: pt})
//	impact, swaps, err := eng.Apply(ctx, batch)
//
// Voice colors are a pure function of the numeric ID: [ColorOf] cycles a
// fixed palette of [ColorCount] hues, so equal IDs always paint alike.
package audiveris
