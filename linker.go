package audiveris

import "github.com/S0urC10ud/audiveris/internal/score"

// SlurLinker matches the beginning orphan slurs of part against the ending
// orphan slurs of precedingPart (the last system of the previous page). The
// returned map goes from current slur to previous slur and must be a partial
// injective mapping: each slur appears at most once on either side. Slurs
// left unmatched are discarded by the caller.
//
// Production linking inspects curve geometry and staff placement, which is
// outside this package; [NewPitchLinker] provides a usable reference
// implementation for pipelines driven from fixture data.
type SlurLinker interface {
	Links(part, precedingPart *score.Part) map[*score.Slur]*score.Slur
}

// LinkerFunc adapts a function to the SlurLinker interface.
type LinkerFunc func(part, precedingPart *score.Part) map[*score.Slur]*score.Slur

// Links calls f.
func (f LinkerFunc) Links(part, precedingPart *score.Part) map[*score.Slur]*score.Slur {
	return f(part, precedingPart)
}

// NewPitchLinker returns a linker that pairs orphans greedily by the pitch
// of their attached heads: a beginning orphan whose right head matches the
// pitch of an ending orphan's left head is linked to the first such orphan
// still unclaimed. The mapping is injective by construction.
func NewPitchLinker() SlurLinker {
	return LinkerFunc(func(part, precedingPart *score.Part) map[*score.Slur]*score.Slur {
		links := make(map[*score.Slur]*score.Slur)
		claimed := make(map[*score.Slur]bool)

		for _, slur := range part.SlursMatching(score.IsBeginningOrphan) {
			right := slur.Head(score.Right)
			if right == nil {
				continue
			}
			for _, prev := range precedingPart.SlursMatching(score.IsEndingOrphan) {
				if claimed[prev] {
					continue
				}
				left := prev.Head(score.Left)
				if left == nil || left.Pitch != right.Pitch {
					continue
				}
				links[slur] = prev
				claimed[prev] = true
				break
			}
		}
		return links
	})
}
