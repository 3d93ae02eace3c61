package score

import "slices"

// MeasureStack is the vertical group of simultaneous measures, one per part,
// across one system. Left and Right bound its abscissa range, used for
// spatial containment queries.
type MeasureStack struct {
	System   *System
	Index    int
	Left     int
	Right    int
	Measures []*Measure
}

// NextSibling returns the following stack in the same system, or nil.
func (st *MeasureStack) NextSibling() *MeasureStack {
	if st.Index+1 >= len(st.System.Stacks) {
		return nil
	}
	return st.System.Stacks[st.Index+1]
}

// PrevSibling returns the preceding stack in the same system, or nil.
func (st *MeasureStack) PrevSibling() *MeasureStack {
	if st.Index == 0 {
		return nil
	}
	return st.System.Stacks[st.Index-1]
}

// MeasureFor returns the measure of this stack belonging to the given part,
// or nil.
func (st *MeasureStack) MeasureFor(part *Part) *Measure {
	for _, m := range st.Measures {
		if m.Part == part {
			return m
		}
	}
	return nil
}

// Family classifies a voice by the kind of material it carries. Families
// sort in declaration order: measure-long voices come before slot-based
// voices, which come before cue voices.
type Family int

const (
	// FamilyMeasure is a voice made of whole-measure material (typically a
	// whole-measure rest), which has no time slot.
	FamilyMeasure Family = iota

	// FamilySlot is a regular voice whose chords occupy time slots.
	FamilySlot

	// FamilyCue is a voice of reduced-size ornamental chords.
	FamilyCue
)

func (f Family) String() string {
	switch f {
	case FamilyMeasure:
		return "measure"
	case FamilySlot:
		return "slot"
	case FamilyCue:
		return "cue"
	}
	return "unknown"
}

// Measure is the per-part slice of one stack. It owns an ordered sequence of
// voices. Voice IDs within a measure are unique positive integers; the
// refinement passes keep them dense (1..N) where possible.
type Measure struct {
	Part  *Part
	Stack *MeasureStack

	Voices []*Voice
}

// AddVoice appends a voice with the next free ID.
func (m *Measure) AddVoice(family Family) *Voice {
	v := &Voice{Measure: m, ID: len(m.Voices) + 1, Family: family}
	m.Voices = append(m.Voices, v)
	return v
}

// VoiceByID returns the voice currently holding the given ID, or nil.
func (m *Measure) VoiceByID(id int) *Voice {
	for _, v := range m.Voices {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// VoiceIDs returns the current ID of every voice, in voice order.
func (m *Measure) VoiceIDs() []int {
	ids := make([]int, len(m.Voices))
	for i, v := range m.Voices {
		ids[i] = v.ID
	}
	return ids
}

// SwapVoiceID renames voice v to newID. If another voice currently holds
// newID, the two voices exchange IDs, so the ID set of the measure is
// preserved; a plain overwrite would duplicate an ID.
func (m *Measure) SwapVoiceID(v *Voice, newID int) {
	if other := m.VoiceByID(newID); other != nil && other != v {
		other.ID = v.ID
	}
	v.ID = newID
}

// SortVoices reorders the voice list using the given comparison function.
func (m *Measure) SortVoices(cmp func(v1, v2 *Voice) int) {
	slices.SortStableFunc(m.Voices, cmp)
}

// RenameVoices reassigns IDs 1..N following the current voice order. This is
// a first-assignment rename, not a swap: it is only valid before any
// cross-measure evidence has been applied.
func (m *Measure) RenameVoices() {
	for i, v := range m.Voices {
		v.ID = i + 1
	}
}

// SetCueVoices propagates each chord's voice to the cue chords attached to
// it, so ornamental material is painted with its host voice.
func (m *Measure) SetCueVoices() {
	for _, v := range m.Voices {
		for _, ch := range v.Chords {
			for _, cue := range ch.CueChords {
				cue.Voice = ch.Voice
			}
		}
	}
}

// Voice is a time-ordered stream of chords within one measure. Its ID is
// meaningful only inside its measure; the refinement passes swap IDs so that
// the same musical voice shows the same ID (and color) across measures,
// systems and pages.
type Voice struct {
	Measure *Measure
	ID      int
	Family  Family
	Chords  []*Chord
}

// AddChord appends a chord to the voice. slotID 0 means no time slot (the
// whole-measure rest case); the chord then logically starts the measure.
func (v *Voice) AddChord(slotID int, centerY int) *Chord {
	ch := &Chord{Measure: v.Measure, Voice: v, Center: Point{Y: centerY}}
	if slotID > 0 {
		ch.Slot = &Slot{ID: slotID}
	}
	v.Chords = append(v.Chords, ch)
	return ch
}

// FirstChord returns the first chord of the voice, or nil if the voice is
// empty.
func (v *Voice) FirstChord() *Chord {
	if len(v.Chords) == 0 {
		return nil
	}
	return v.Chords[0]
}
