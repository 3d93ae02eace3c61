package score

// HSide selects one horizontal side of a slur.
type HSide int

const (
	Left HSide = iota
	Right
)

func (s HSide) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Slur is a curve connecting a left note to a right note. A slur marked as a
// tie asserts that both heads sound as one sustained note, which the
// refinement passes use as voice-identity evidence across boundaries.
//
// When the physical curve is split across a system break, the two halves are
// linked through a single-hop extension: the right half's left extension is
// the left half, and vice versa. Curves split across a page break carry no
// stored link at all; they are re-matched on demand by a SlurLinker.
type Slur struct {
	ID   string
	Part *Part
	Tie  bool

	leftHead  *Note
	rightHead *Note
	leftExt   *Slur
	rightExt  *Slur
}

// SetHead attaches the slur to a note on the given side and records the
// attachment on the note.
func (s *Slur) SetHead(side HSide, n *Note) {
	if side == Left {
		s.leftHead = n
	} else {
		s.rightHead = n
	}
	n.Slurs = append(n.Slurs, s)
}

// Head returns the note attached on the given side, or nil.
func (s *Slur) Head(side HSide) *Note {
	if side == Left {
		return s.leftHead
	}
	return s.rightHead
}

// SetExtension links this slur to its continuation on the given side. The
// reverse link is set on the other slur.
func (s *Slur) SetExtension(side HSide, other *Slur) {
	if side == Left {
		s.leftExt = other
		other.rightExt = s
	} else {
		s.rightExt = other
		other.leftExt = s
	}
}

// Extension returns the continuation slur on the given side, or nil.
func (s *Slur) Extension(side HSide) *Slur {
	if side == Left {
		return s.leftExt
	}
	return s.rightExt
}

// IsBeginningOrphan reports whether the slur starts a system with no left
// head and no left extension: its start lies in a previous page, awaiting a
// cross-page match.
func IsBeginningOrphan(s *Slur) bool {
	return s.leftHead == nil && s.leftExt == nil && s.rightHead != nil
}

// IsEndingOrphan reports whether the slur ends a system with no right head
// and no right extension: its end lies in a following page.
func IsEndingOrphan(s *Slur) bool {
	return s.rightHead == nil && s.rightExt == nil && s.leftHead != nil
}

// CheckCrossTie marks this slur and its cross-page predecessor as confirmed
// ties when the joined heads share the same pitch. Cross-page ties are never
// persisted; this is recomputed each time score-level refinement runs.
func (s *Slur) CheckCrossTie(prev *Slur) {
	right := s.rightHead
	left := prev.leftHead
	if right == nil || left == nil {
		return
	}
	if right.Pitch == left.Pitch {
		s.Tie = true
		prev.Tie = true
	}
}

// DiscardOrphans removes from their parts all slurs still lacking a head on
// the given side. An unmatched orphan is a phrase mark that does not cross
// the boundary; it cannot match anything else.
func DiscardOrphans(slurs []*Slur, side HSide) {
	for _, s := range slurs {
		if s.Head(side) == nil && s.Part != nil {
			s.Part.RemoveSlur(s)
		}
	}
}
