package audiveris

import (
	"log/slog"

	"github.com/S0urC10ud/audiveris/internal/score"
)

// slurAdapter reports the partnering slur of a tie at the previous location.
// There is one adapter per refinement granularity:
//
//   - measure adapter: across measures in a single system, the partner is
//     the slur itself.
//   - system adapter: across systems in a single page, the partner is the
//     slur's left extension.
//   - page adapter: across pages in a score, the partner comes from the
//     cross-page links map computed on the fly.
type slurAdapter func(*score.Slur) *score.Slur

// tiedID checks whether the voice is tied (via a tie slur on its first
// chord) to a previous voice and thus must use the same ID. The second
// return value is false when no evidence is found: no tie, no partner, or a
// partner whose measure the upstream rhythm pass could not fully resolve.
func tiedID(voice *score.Voice, adapter slurAdapter) (int, bool) {
	firstChord := voice.FirstChord()
	if firstChord == nil {
		return 0, false
	}

	// Is there an incoming tie on a head of this chord?
	for _, note := range firstChord.Notes {
		if !note.Head {
			continue
		}
		for _, slur := range note.Slurs {
			if slur.Head(score.Right) != note || !slur.Tie {
				continue
			}
			prevSlur := adapter(slur)
			if prevSlur == nil {
				continue
			}
			left := prevSlur.Head(score.Left)
			if left == nil {
				continue
			}
			// Can be nil if rhythm could not process the whole measure.
			leftVoice := left.Voice()
			if leftVoice == nil {
				continue
			}
			slog.Debug("tie imposes voice id",
				"slur", slur.ID, "voice", voice.ID, "tied", leftVoice.ID)
			return leftVoice.ID, true
		}
	}
	return 0, false
}

// RefineSystem connects voices within the same part across all measures of a
// system. Each stack already has its own voice sequence; this pass renames
// IDs so a voice continuing from the previous measure keeps its ID.
// Evidence per voice, in order: incoming tie, same-voice annotation to the
// previous measure, then the chord's preferred-ID hint, which overrides
// inferred evidence. Returns the number of swaps performed.
func RefineSystem(system *score.System) int {
	swaps := 0
	for _, part := range system.Parts {
		var prevMeasure *score.Measure
		for _, stack := range system.Stacks {
			measure := stack.MeasureFor(part)
			if measure == nil {
				continue
			}
			swaps += refineMeasure(measure, prevMeasure)
			prevMeasure = measure
		}
	}
	return swaps
}

// refineMeasure unifies one measure against its predecessor in the same
// part. prevMeasure may be nil (first measure of the boundary): tie and
// annotation evidence are then skipped, but preferred-ID hints still apply.
func refineMeasure(measure, prevMeasure *score.Measure) int {
	// Across measures within a single system, the partnering slur is the
	// slur itself.
	measureAdapter := func(s *score.Slur) *score.Slur { return s }
	relations := measure.Part.System.Relations

	swaps := 0
	for _, voice := range measure.Voices {
		if prevMeasure != nil {
			// Tie-based voice link.
			if id, ok := tiedID(voice, measureAdapter); ok && voice.ID != id {
				measure.SwapVoiceID(voice, id)
				swaps++
			}

			// Same-voice annotation link.
			if ch2 := voice.FirstChord(); ch2 != nil {
				for _, ch1 := range relations.SameVoice(ch2) {
					if ch1.Measure != prevMeasure {
						continue
					}
					if ch1.Voice != nil && voice.ID != ch1.Voice.ID {
						measure.SwapVoiceID(voice, ch1.Voice.ID)
						swaps++
					}
					break
				}
			}
		}

		// Preferred voice ID?
		if ch := voice.FirstChord(); ch != nil {
			if pref := ch.PreferredVoiceID; pref > 0 && pref != voice.ID {
				measure.SwapVoiceID(voice, pref)
				swaps++
			}
		}
	}
	return swaps
}

// RefinePage connects voices within the same logical part across all systems
// of a page. Only the first measure of each system after the first is
// examined: within-system coherence is RefineSystem's job. Returns the
// number of swaps performed.
func RefinePage(page *score.Page) int {
	swaps := 0
	for _, lp := range page.LogicalParts() {
		swaps += refinePagePart(page, lp)
	}
	return swaps
}

// refinePagePart runs the page-level pass for a single logical part. Safe to
// call concurrently for distinct logical parts of the same page: each part
// owns disjoint measures.
func refinePagePart(page *score.Page, lp *score.LogicalPart) int {
	firstSystem := page.FirstSystem()

	// Across systems within a single page, the partnering slur is the left
	// extension.
	systemAdapter := func(s *score.Slur) *score.Slur { return s.Extension(score.Left) }

	swaps := 0
	for _, system := range page.Systems {
		if system == firstSystem {
			continue
		}
		part := system.PartByLogical(lp.ID)
		if part == nil {
			continue
		}

		// Check tied voices from the previous system. A part may have no
		// measure (case of tablature, ignored upstream).
		firstMeasure := part.FirstMeasure()
		if firstMeasure == nil {
			continue
		}
		for _, voice := range firstMeasure.Voices {
			if id, ok := tiedID(voice, systemAdapter); ok && voice.ID != id {
				part.SwapVoiceID(voice.ID, id)
				swaps++
			}
		}
	}
	return swaps
}

// RefineScore connects voices within the same logical part across all pages
// of a score. Ties across pages cannot easily be persisted, so they are
// detected and used on the fly: the linker re-matches ending orphan slurs of
// the previous page against beginning orphans of the current one, matched
// pairs are confirmed as ties, and every remaining orphan on either side is
// discarded, being a phrase mark that does not cross the boundary.
//
// selected restricts processing to the given pages; nil means every page. A
// page outside the selection breaks the chain: no unification happens across
// it. Returns the count of modifications made.
func RefineScore(sc *score.Score, linker SlurLinker, selected []*score.Page) int {
	modifs := 0
	var prevSystem *score.System // last system of preceding page, if any

	for _, page := range sc.Pages {
		if selected != nil && !containsPage(selected, page) {
			prevSystem = nil
			continue
		}

		if prevSystem != nil {
			for _, scorePart := range sc.LogicalParts {
				// Check tied voices from the same logical part in the
				// previous page.
				lp := page.LogicalPartByID(scorePart.ID)
				if lp == nil {
					continue // logical part not found in this page
				}
				part := page.FirstSystem().PartByLogical(lp.ID)
				if part == nil {
					continue // not present in the first system of this page
				}

				orphans := part.SlursMatching(score.IsBeginningOrphan)

				if precedingPart := prevSystem.PartByLogical(lp.ID); precedingPart != nil {
					precOrphans := precedingPart.SlursMatching(score.IsEndingOrphan)

					links := linker.Links(part, precedingPart) // slur -> prevSlur

					// Apply the link possibilities.
					for slur, prevSlur := range links {
						slur.CheckCrossTie(prevSlur)
					}

					// Purge orphans across pages.
					orphans = withoutLinkedKeys(orphans, links)
					precOrphans = withoutLinkedValues(precOrphans, links)
					score.DiscardOrphans(precOrphans, score.Right)

					// Across pages within a score, use the links map.
					pageAdapter := func(s *score.Slur) *score.Slur { return links[s] }

					if firstMeasure := part.FirstMeasure(); firstMeasure != nil {
						for _, voice := range firstMeasure.Voices {
							if id, ok := tiedID(voice, pageAdapter); ok && voice.ID != id {
								lp.SwapVoiceID(page, voice.ID, id)
								modifs++
							}
						}
					}
				}

				score.DiscardOrphans(orphans, score.Left)
			}
		}

		prevSystem = page.LastSystem()
	}

	return modifs
}

// RefineStack refines voice IDs within a stack, independent of any
// cross-scope evidence. When called, initial IDs follow voice creation order
// (measure-long voices first, then slot voices). Voices are sorted
// vertically, renamed top to bottom, and each chord voice is extended to its
// cue chords. The default pipeline does not invoke this pass; it is exposed
// as the baseline assignment for callers that need it.
func RefineStack(stack *score.MeasureStack) {
	for _, measure := range stack.Measures {
		measure.SortVoices(CompareByPosition)
		measure.RenameVoices()
		measure.SetCueVoices()
	}
}

func containsPage(pages []*score.Page, page *score.Page) bool {
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}

// withoutLinkedKeys removes from slurs every entry that appears as a key of
// links.
func withoutLinkedKeys(slurs []*score.Slur, links map[*score.Slur]*score.Slur) []*score.Slur {
	var out []*score.Slur
	for _, s := range slurs {
		if _, ok := links[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// withoutLinkedValues removes from slurs every entry that appears as a value
// of links.
func withoutLinkedValues(slurs []*score.Slur, links map[*score.Slur]*score.Slur) []*score.Slur {
	linked := make(map[*score.Slur]bool, len(links))
	for _, prev := range links {
		linked[prev] = true
	}
	var out []*score.Slur
	for _, s := range slurs {
		if !linked[s] {
			out = append(out, s)
		}
	}
	return out
}
