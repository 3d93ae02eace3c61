package audiveris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S0urC10ud/audiveris/internal/score"
)

func TestPitchLinker_MatchesByPitch(t *testing.T) {
	d := newDuet(t)
	sys1 := d.addSystem(1)
	d.newPage()
	sys2 := d.addSystem(1)

	m1 := sys1.Stacks[0].Measures[0]
	top1, bottom1 := twoVoices(m1, 60, 40)
	m2 := sys2.Stacks[0].Measures[0]
	top2, bottom2 := twoVoices(m2, 40, 60)

	ending60 := &score.Slur{ID: "e60"}
	ending60.SetHead(score.Left, top1.Notes[0])
	sys1.Parts[0].AddSlur(ending60)
	ending40 := &score.Slur{ID: "e40"}
	ending40.SetHead(score.Left, bottom1.Notes[0])
	sys1.Parts[0].AddSlur(ending40)

	beginning60 := &score.Slur{ID: "b60"}
	beginning60.SetHead(score.Right, bottom2.Notes[0])
	sys2.Parts[0].AddSlur(beginning60)
	beginning40 := &score.Slur{ID: "b40"}
	beginning40.SetHead(score.Right, top2.Notes[0])
	sys2.Parts[0].AddSlur(beginning40)

	links := NewPitchLinker().Links(sys2.Parts[0], sys1.Parts[0])

	require.Len(t, links, 2)
	assert.Same(t, ending60, links[beginning60])
	assert.Same(t, ending40, links[beginning40])
}

func TestPitchLinker_Injective(t *testing.T) {
	d := newDuet(t)
	sys1 := d.addSystem(1)
	d.newPage()
	sys2 := d.addSystem(1)

	top1, _ := twoVoices(sys1.Stacks[0].Measures[0], 60, 40)
	ending := &score.Slur{ID: "e"}
	ending.SetHead(score.Left, top1.Notes[0])
	sys1.Parts[0].AddSlur(ending)

	// Two beginning orphans at the same pitch compete for one ending orphan.
	m2 := sys2.Stacks[0].Measures[0]
	a, b := twoVoices(m2, 60, 60)
	first := &score.Slur{ID: "first"}
	first.SetHead(score.Right, a.Notes[0])
	sys2.Parts[0].AddSlur(first)
	second := &score.Slur{ID: "second"}
	second.SetHead(score.Right, b.Notes[0])
	sys2.Parts[0].AddSlur(second)

	links := NewPitchLinker().Links(sys2.Parts[0], sys1.Parts[0])

	require.Len(t, links, 1)
	assert.Same(t, ending, links[first])
	_, ok := links[second]
	assert.False(t, ok)
}

func TestLinkerFunc_Adapts(t *testing.T) {
	called := false
	linker := LinkerFunc(func(part, precedingPart *score.Part) map[*score.Slur]*score.Slur {
		called = true
		return nil
	})
	assert.Nil(t, linker.Links(nil, nil))
	assert.True(t, called)
}
