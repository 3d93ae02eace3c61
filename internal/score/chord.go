package score

// Slot is a discrete time position within a measure stack, numbered from 1.
type Slot struct {
	ID int
}

// Chord groups the simultaneous notes of one voice at one time position.
// Slot is nil for whole-measure material. PreferredVoiceID, when positive,
// is an externally supplied override that wins over tie and annotation
// evidence during refinement.
type Chord struct {
	Measure *Measure
	Voice   *Voice

	Center           Point
	Slot             *Slot
	PreferredVoiceID int
	Notes            []*Note

	// CueChords are reduced-size ornamental chords attached to this chord;
	// they inherit its voice via Measure.SetCueVoices.
	CueChords []*Chord
}

// AddNote appends a head note with the given pitch.
func (c *Chord) AddNote(pitch int) *Note {
	n := &Note{Chord: c, Head: true, Pitch: pitch}
	c.Notes = append(c.Notes, n)
	return n
}

// AddCue attaches a cue chord to this chord.
func (c *Chord) AddCue(centerY int) *Chord {
	cue := &Chord{Measure: c.Measure, Center: Point{Y: centerY}}
	c.CueChords = append(c.CueChords, cue)
	return cue
}

// Note is one note head (or rest) within a chord. Pitch is the integer pitch
// step used to confirm tie relationships; no further musical semantics are
// attached to it.
type Note struct {
	Chord *Chord
	Head  bool
	Pitch int

	// Slurs are the slurs attached to this note on either side.
	Slurs []*Slur
}

// Voice returns the voice owning this note's chord, or nil if the chord has
// not been assigned to a voice (upstream rhythm derivation incomplete).
func (n *Note) Voice() *Voice {
	if n.Chord == nil {
		return nil
	}
	return n.Chord.Voice
}
