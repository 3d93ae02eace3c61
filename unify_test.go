package audiveris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S0urC10ud/audiveris/internal/score"
)

// duet is everything the unification tests need: a one-part score laid out on
// demand. Each builder call below adds structure; voice content is written by
// the individual tests.
type duet struct {
	sc   *score.Score
	lp   *score.LogicalPart
	page *score.Page
}

func newDuet(t *testing.T) *duet {
	t.Helper()
	sc := score.NewScore()
	return &duet{sc: sc, lp: sc.AddLogicalPart("Violin")}
}

// addSystem appends a system with the given number of stacks to the current
// page, creating the page on first call.
func (d *duet) addSystem(stacks int) *score.System {
	if d.page == nil {
		d.page = d.sc.AddPage()
	}
	sys := d.page.AddSystem()
	sys.AddPart(d.lp)
	for i := 0; i < stacks; i++ {
		sys.AddStack(i*100, i*100+99)
	}
	return sys
}

// newPage closes the current page so the next addSystem starts a fresh one.
func (d *duet) newPage() {
	d.page = nil
}

// twoVoices fills a measure with two slot voices: voice 1 at the top carrying
// pitchTop, voice 2 below carrying pitchBottom. The chords are returned in
// that order.
func twoVoices(m *score.Measure, pitchTop, pitchBottom int) (*score.Chord, *score.Chord) {
	top := m.AddVoice(score.FamilySlot).AddChord(1, 10)
	top.AddNote(pitchTop)
	bottom := m.AddVoice(score.FamilySlot).AddChord(1, 50)
	bottom.AddNote(pitchBottom)
	return top, bottom
}

// tie connects two notes with a tie slur owned by the left note's part.
func tie(left, right *score.Note) *score.Slur {
	s := &score.Slur{ID: "tie", Tie: true}
	s.SetHead(score.Left, left)
	s.SetHead(score.Right, right)
	left.Chord.Measure.Part.AddSlur(s)
	return s
}

func TestRefineSystem_TieSwapsVoiceIDs(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(2)
	m1 := sys.Stacks[0].Measures[0]
	m2 := sys.Stacks[1].Measures[0]

	top1, _ := twoVoices(m1, 60, 40)
	// In the second measure the tied pitch sits in the bottom voice.
	_, bottom2 := twoVoices(m2, 40, 60)
	tie(top1.Notes[0], bottom2.Notes[0])

	swaps := RefineSystem(sys)

	assert.Equal(t, 1, swaps)
	// The tied voice inherited ID 1, its neighbor took ID 2.
	assert.Equal(t, 1, bottom2.Voice.ID)
	assert.Equal(t, []int{2, 1}, m2.VoiceIDs())
	// The first measure is untouched.
	assert.Equal(t, []int{1, 2}, m1.VoiceIDs())
}

func TestRefineSystem_Idempotent(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(2)
	top1, _ := twoVoices(sys.Stacks[0].Measures[0], 60, 40)
	_, bottom2 := twoVoices(sys.Stacks[1].Measures[0], 40, 60)
	tie(top1.Notes[0], bottom2.Notes[0])

	require.Equal(t, 1, RefineSystem(sys))
	assert.Zero(t, RefineSystem(sys))
	assert.Zero(t, RefineSystem(sys))
}

func TestRefineSystem_NonTieSlurIgnored(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(2)
	top1, _ := twoVoices(sys.Stacks[0].Measures[0], 60, 40)
	_, bottom2 := twoVoices(sys.Stacks[1].Measures[0], 40, 60)
	s := tie(top1.Notes[0], bottom2.Notes[0])
	s.Tie = false // plain phrase slur carries no voice evidence

	assert.Zero(t, RefineSystem(sys))
	assert.Equal(t, 2, bottom2.Voice.ID)
}

func TestRefineSystem_UnresolvedPartnerIgnored(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(2)
	m1 := sys.Stacks[0].Measures[0]

	// The left chord never got a voice: rhythm could not process its measure.
	orphanChord := &score.Chord{Measure: m1}
	left := orphanChord.AddNote(60)

	_, bottom2 := twoVoices(sys.Stacks[1].Measures[0], 40, 60)
	tie(left, bottom2.Notes[0])

	assert.Zero(t, RefineSystem(sys))
}

func TestRefineSystem_SameVoiceRelation(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(2)
	m1 := sys.Stacks[0].Measures[0]
	m2 := sys.Stacks[1].Measures[0]
	top1, _ := twoVoices(m1, 60, 40)
	_, bottom2 := twoVoices(m2, 40, 60)

	sys.Relations.AddSameVoice(top1, bottom2)

	swaps := RefineSystem(sys)
	assert.Equal(t, 1, swaps)
	assert.Equal(t, 1, bottom2.Voice.ID)
}

func TestRefineSystem_PreferredHintOverrides(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(2)
	m2 := sys.Stacks[1].Measures[0]
	twoVoices(sys.Stacks[0].Measures[0], 60, 40)
	_, bottom2 := twoVoices(m2, 40, 60)
	bottom2.PreferredVoiceID = 1

	swaps := RefineSystem(sys)
	assert.Equal(t, 1, swaps)
	assert.Equal(t, 1, bottom2.Voice.ID)
	assert.Equal(t, []int{2, 1}, m2.VoiceIDs())
}

func TestRefineSystem_PreferredHintAppliesInFirstMeasure(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(1)
	m1 := sys.Stacks[0].Measures[0]
	top1, _ := twoVoices(m1, 60, 40)
	top1.PreferredVoiceID = 2

	swaps := RefineSystem(sys)
	assert.Equal(t, 1, swaps)
	assert.Equal(t, []int{2, 1}, m1.VoiceIDs())
}

func TestRefineSystem_PreservesIDSets(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(2)
	m1 := sys.Stacks[0].Measures[0]
	m2 := sys.Stacks[1].Measures[0]
	top1, _ := twoVoices(m1, 60, 40)
	_, bottom2 := twoVoices(m2, 40, 60)
	tie(top1.Notes[0], bottom2.Notes[0])

	before1 := m1.VoiceIDs()
	before2 := m2.VoiceIDs()
	RefineSystem(sys)

	assert.ElementsMatch(t, before1, m1.VoiceIDs())
	assert.ElementsMatch(t, before2, m2.VoiceIDs())
}

func TestRefinePage_ExtensionAcrossSystems(t *testing.T) {
	d := newDuet(t)
	sys1 := d.addSystem(1)
	sys2 := d.addSystem(1)

	top1, _ := twoVoices(sys1.Stacks[0].Measures[0], 60, 40)
	m2 := sys2.Stacks[0].Measures[0]
	_, bottom2 := twoVoices(m2, 40, 60)

	// Split tie: the left half ends system 1, the right half starts system 2.
	leftHalf := &score.Slur{ID: "left-half", Tie: true}
	leftHalf.SetHead(score.Left, top1.Notes[0])
	sys1.Parts[0].AddSlur(leftHalf)

	rightHalf := &score.Slur{ID: "right-half", Tie: true}
	rightHalf.SetHead(score.Right, bottom2.Notes[0])
	rightHalf.SetExtension(score.Left, leftHalf)
	sys2.Parts[0].AddSlur(rightHalf)

	swaps := RefinePage(d.page)

	assert.Equal(t, 1, swaps)
	assert.Equal(t, 1, bottom2.Voice.ID)
	assert.Equal(t, []int{2, 1}, m2.VoiceIDs())
}

func TestRefinePage_RenamesWholePart(t *testing.T) {
	d := newDuet(t)
	d.addSystem(1)
	sys2 := d.addSystem(2)

	top1, _ := twoVoices(d.page.Systems[0].Stacks[0].Measures[0], 60, 40)
	_, bottom2 := twoVoices(sys2.Stacks[0].Measures[0], 40, 60)
	// Second measure of system 2, same part: the swap must reach it too.
	m22 := sys2.Stacks[1].Measures[0]
	twoVoices(m22, 40, 60)

	leftHalf := &score.Slur{Tie: true}
	leftHalf.SetHead(score.Left, top1.Notes[0])
	rightHalf := &score.Slur{Tie: true}
	rightHalf.SetHead(score.Right, bottom2.Notes[0])
	rightHalf.SetExtension(score.Left, leftHalf)
	sys2.Parts[0].AddSlur(rightHalf)

	require.Equal(t, 1, RefinePage(d.page))
	assert.Equal(t, []int{2, 1}, sys2.Stacks[0].Measures[0].VoiceIDs())
	assert.Equal(t, []int{2, 1}, m22.VoiceIDs())
}

func TestRefinePage_FirstSystemUntouched(t *testing.T) {
	d := newDuet(t)
	sys1 := d.addSystem(1)
	twoVoices(sys1.Stacks[0].Measures[0], 60, 40)

	assert.Zero(t, RefinePage(d.page))
	assert.Equal(t, []int{1, 2}, sys1.Stacks[0].Measures[0].VoiceIDs())
}

func TestRefineStack_SortsRenamesAndCues(t *testing.T) {
	d := newDuet(t)
	sys := d.addSystem(1)
	m := sys.Stacks[0].Measures[0]

	low := m.AddVoice(score.FamilySlot)
	lowChord := low.AddChord(1, 80)
	cue := lowChord.AddCue(70)
	high := m.AddVoice(score.FamilySlot)
	high.AddChord(1, 10)

	RefineStack(sys.Stacks[0])

	// Voices renumbered top to bottom.
	assert.Equal(t, 1, high.ID)
	assert.Equal(t, 2, low.ID)
	assert.Equal(t, []int{1, 2}, m.VoiceIDs())
	assert.Same(t, low, cue.Voice)
}
