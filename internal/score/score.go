// Package score holds the in-memory document model for a recognized musical
// score: pages, systems, parts, measure stacks, measures, voices, chords,
// notes, slurs, and the edit operations that mutate them.
//
// Ownership is strictly top-down (Score → Page → System → Part/MeasureStack →
// Measure → Voice → Chord → Note); everything else is a non-owning
// back-reference. A voice ID is only meaningful within its own measure;
// continuity of the same musical voice across measures, systems and pages is
// inferred by the refinement passes in the root package, never stored.
package score

// Point is a location on the page, in sheet coordinates.
type Point struct {
	X int
	Y int
}

// Score is the top-level document: an ordered sequence of pages plus the
// logical parts shared by all of them.
type Score struct {
	Pages        []*Page
	LogicalParts []*LogicalPart
}

// NewScore returns an empty score.
func NewScore() *Score {
	return &Score{}
}

// AddLogicalPart registers a new logical part with the next free ID.
func (s *Score) AddLogicalPart(name string) *LogicalPart {
	lp := &LogicalPart{ID: len(s.LogicalParts) + 1, Name: name}
	s.LogicalParts = append(s.LogicalParts, lp)
	return lp
}

// AddPage appends a new page, numbered 1..N.
func (s *Score) AddPage() *Page {
	p := &Page{Score: s, Number: len(s.Pages) + 1}
	s.Pages = append(s.Pages, p)
	return p
}

// Page returns the page with the given 1-based number, or nil.
func (s *Score) Page(number int) *Page {
	if number < 1 || number > len(s.Pages) {
		return nil
	}
	return s.Pages[number-1]
}

// LogicalPart is the stable identity of one instrumental line across all
// pages and systems of the score. Per-system Part instances point back to it.
type LogicalPart struct {
	ID   int
	Name string
}

// SwapVoiceID exchanges two voice IDs for this logical part across every
// system of the given page. Used when a cross-page tie imposes an ID on the
// first measure of a page: the rename must hold for the whole page, not just
// the first system.
func (lp *LogicalPart) SwapVoiceID(page *Page, id1, id2 int) {
	for _, system := range page.Systems {
		if part := system.PartByLogical(lp.ID); part != nil {
			part.SwapVoiceID(id1, id2)
		}
	}
}

// Page is one page of the score: an ordered sequence of systems.
type Page struct {
	Score   *Score
	Number  int
	Systems []*System
}

// AddSystem appends a new system to the page.
func (p *Page) AddSystem() *System {
	sys := &System{Page: p, Index: len(p.Systems), Relations: newRelations()}
	p.Systems = append(p.Systems, sys)
	return sys
}

// FirstSystem returns the first system of the page, or nil.
func (p *Page) FirstSystem() *System {
	if len(p.Systems) == 0 {
		return nil
	}
	return p.Systems[0]
}

// LastSystem returns the last system of the page, or nil.
func (p *Page) LastSystem() *System {
	if len(p.Systems) == 0 {
		return nil
	}
	return p.Systems[len(p.Systems)-1]
}

// LogicalParts returns the distinct logical parts that appear on this page,
// in order of first appearance.
func (p *Page) LogicalParts() []*LogicalPart {
	var parts []*LogicalPart
	seen := make(map[int]bool)
	for _, system := range p.Systems {
		for _, part := range system.Parts {
			if !seen[part.Logical.ID] {
				seen[part.Logical.ID] = true
				parts = append(parts, part.Logical)
			}
		}
	}
	return parts
}

// LogicalPartByID returns the logical part with the given ID if it appears
// on this page, or nil.
func (p *Page) LogicalPartByID(id int) *LogicalPart {
	for _, lp := range p.LogicalParts() {
		if lp.ID == id {
			return lp
		}
	}
	return nil
}

// System is one horizontal band of music: the per-system instantiation of
// each logical part, plus the measure stacks that slice it vertically.
type System struct {
	Page      *Page
	Index     int
	Parts     []*Part
	Stacks    []*MeasureStack
	Relations *Relations
}

// AddPart appends a per-system part bound to the given logical part.
// Parts must be added before stacks: AddStack creates one measure per part.
func (sys *System) AddPart(lp *LogicalPart) *Part {
	part := &Part{System: sys, Logical: lp, Index: len(sys.Parts)}
	sys.Parts = append(sys.Parts, part)
	return part
}

// AddStack appends a measure stack spanning [left, right] in abscissa and
// creates one measure per existing part.
func (sys *System) AddStack(left, right int) *MeasureStack {
	stack := &MeasureStack{System: sys, Index: len(sys.Stacks), Left: left, Right: right}
	for _, part := range sys.Parts {
		m := &Measure{Part: part, Stack: stack}
		part.Measures = append(part.Measures, m)
		stack.Measures = append(stack.Measures, m)
	}
	sys.Stacks = append(sys.Stacks, stack)
	return stack
}

// PartByLogical returns the part instantiating the given logical part ID in
// this system, or nil if the logical part does not appear here.
func (sys *System) PartByLogical(id int) *Part {
	for _, part := range sys.Parts {
		if part.Logical.ID == id {
			return part
		}
	}
	return nil
}

// StackAt returns the measure stack whose abscissa range contains the given
// point, or nil if the point falls outside every stack.
func (sys *System) StackAt(pt Point) *MeasureStack {
	for _, stack := range sys.Stacks {
		if pt.X >= stack.Left && pt.X <= stack.Right {
			return stack
		}
	}
	return nil
}

// Part is the concrete appearance of a logical part within one system.
// It owns one measure per stack of the system, plus the slurs attached to
// its notes.
type Part struct {
	System   *System
	Logical  *LogicalPart
	Index    int
	Measures []*Measure
	Slurs    []*Slur
}

// FirstMeasure returns the first measure of the part, or nil. A part may
// have no measure (tablature staves are ignored upstream).
func (p *Part) FirstMeasure() *Measure {
	if len(p.Measures) == 0 {
		return nil
	}
	return p.Measures[0]
}

// AddSlur attaches a slur to this part.
func (p *Part) AddSlur(s *Slur) {
	s.Part = p
	p.Slurs = append(p.Slurs, s)
}

// RemoveSlur detaches a slur from this part.
func (p *Part) RemoveSlur(s *Slur) {
	for i, sl := range p.Slurs {
		if sl == s {
			p.Slurs = append(p.Slurs[:i], p.Slurs[i+1:]...)
			s.Part = nil
			return
		}
	}
}

// SlursMatching returns the part slurs satisfying the given predicate.
func (p *Part) SlursMatching(pred func(*Slur) bool) []*Slur {
	var out []*Slur
	for _, s := range p.Slurs {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

// SwapVoiceID exchanges two voice IDs in every measure of the part.
// A measure that holds only one of the two IDs gets a plain rename, which
// preserves the ID set of that measure.
func (p *Part) SwapVoiceID(id1, id2 int) {
	for _, m := range p.Measures {
		v1 := m.VoiceByID(id1)
		v2 := m.VoiceByID(id2)
		if v1 != nil {
			v1.ID = id2
		}
		if v2 != nil {
			v2.ID = id1
		}
	}
}
