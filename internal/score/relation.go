package score

// Relations is the per-system annotation graph. It currently carries only
// same-voice edges: explicit assertions that two chords (typically in
// adjacent measures) belong to the same voice, regardless of tie evidence.
type Relations struct {
	sameVoice map[*Chord][]*Chord
}

func newRelations() *Relations {
	return &Relations{sameVoice: make(map[*Chord][]*Chord)}
}

// AddSameVoice records a symmetric same-voice edge between two chords.
func (r *Relations) AddSameVoice(a, b *Chord) {
	r.sameVoice[a] = append(r.sameVoice[a], b)
	r.sameVoice[b] = append(r.sameVoice[b], a)
}

// SameVoice returns the chords linked to c by a same-voice edge, in
// insertion order.
func (r *Relations) SameVoice(c *Chord) []*Chord {
	return r.sameVoice[c]
}
