package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slurFixture returns a part with one measure, one voice, and one chord
// carrying a single note of the given pitch.
func slurFixture(t *testing.T, pitch int) (*Part, *Note) {
	t.Helper()
	sys := buildSystem(t, 1, 1)
	part := sys.Parts[0]
	v := part.Measures[0].AddVoice(FamilySlot)
	n := v.AddChord(1, 10).AddNote(pitch)
	return part, n
}

func TestSetHead_RegistersOnNote(t *testing.T) {
	_, n := slurFixture(t, 60)
	s := &Slur{ID: "s1"}

	s.SetHead(Left, n)

	assert.Same(t, n, s.Head(Left))
	assert.Nil(t, s.Head(Right))
	require.Len(t, n.Slurs, 1)
	assert.Same(t, s, n.Slurs[0])
}

func TestSetExtension_Bidirectional(t *testing.T) {
	a := &Slur{ID: "a"}
	b := &Slur{ID: "b"}

	// b continues a across a system break: a is the left half.
	b.SetExtension(Left, a)

	assert.Same(t, a, b.Extension(Left))
	assert.Same(t, b, a.Extension(Right))
}

func TestOrphanPredicates(t *testing.T) {
	_, n := slurFixture(t, 60)

	beginning := &Slur{}
	beginning.SetHead(Right, n)
	assert.True(t, IsBeginningOrphan(beginning))
	assert.False(t, IsEndingOrphan(beginning))

	ending := &Slur{}
	ending.SetHead(Left, n)
	assert.True(t, IsEndingOrphan(ending))
	assert.False(t, IsBeginningOrphan(ending))

	// A left extension disqualifies a beginning orphan.
	extended := &Slur{}
	extended.SetHead(Right, n)
	extended.SetExtension(Left, &Slur{})
	assert.False(t, IsBeginningOrphan(extended))

	// A complete slur is no orphan at all.
	complete := &Slur{}
	complete.SetHead(Left, n)
	complete.SetHead(Right, n)
	assert.False(t, IsBeginningOrphan(complete))
	assert.False(t, IsEndingOrphan(complete))
}

func TestCheckCrossTie(t *testing.T) {
	_, left := slurFixture(t, 60)
	_, right := slurFixture(t, 60)

	prev := &Slur{}
	prev.SetHead(Left, left)
	cur := &Slur{}
	cur.SetHead(Right, right)

	cur.CheckCrossTie(prev)
	assert.True(t, cur.Tie)
	assert.True(t, prev.Tie)
}

func TestCheckCrossTie_PitchMismatch(t *testing.T) {
	_, left := slurFixture(t, 60)
	_, right := slurFixture(t, 62)

	prev := &Slur{}
	prev.SetHead(Left, left)
	cur := &Slur{}
	cur.SetHead(Right, right)

	cur.CheckCrossTie(prev)
	assert.False(t, cur.Tie)
	assert.False(t, prev.Tie)
}

func TestDiscardOrphans(t *testing.T) {
	part, n := slurFixture(t, 60)

	matched := &Slur{ID: "matched"}
	matched.SetHead(Right, n)
	matched.SetHead(Left, n)
	unmatched := &Slur{ID: "unmatched"}
	unmatched.SetHead(Right, n)
	part.AddSlur(matched)
	part.AddSlur(unmatched)

	DiscardOrphans([]*Slur{matched, unmatched}, Left)

	require.Len(t, part.Slurs, 1)
	assert.Same(t, matched, part.Slurs[0])
	assert.Nil(t, unmatched.Part)
}

func TestRelations_SameVoiceSymmetric(t *testing.T) {
	sys := buildSystem(t, 1, 2)
	part := sys.Parts[0]
	a := part.Measures[0].AddVoice(FamilySlot).AddChord(1, 10)
	b := part.Measures[1].AddVoice(FamilySlot).AddChord(1, 12)

	sys.Relations.AddSameVoice(a, b)

	assert.Equal(t, []*Chord{b}, sys.Relations.SameVoice(a))
	assert.Equal(t, []*Chord{a}, sys.Relations.SameVoice(b))
	assert.Empty(t, sys.Relations.SameVoice(&Chord{}))
}
