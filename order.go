package audiveris

import (
	"cmp"
	"fmt"
	"image/color"

	"github.com/S0urC10ud/audiveris/internal/score"
)

// CompareByID orders two voices by their numeric ID. Total order, no
// preconditions.
func CompareByID(v1, v2 *score.Voice) int {
	return cmp.Compare(v1.ID, v2.ID)
}

// CompareByPosition orders two voices of the same measure stack by vertical
// position: containing part first, then voice family, then first time slot,
// then chord ordinate. A whole-measure voice has no slot but always starts
// the measure, so it sorts before any voice starting after slot 1.
//
// Comparing voices from different stacks, or a voice holding no chord at
// all, is a contract violation and panics; it must never be coerced to an
// arbitrary order.
func CompareByPosition(v1, v2 *score.Voice) int {
	if v1.Measure.Stack != v2.Measure.Stack {
		panic(fmt.Sprintf("audiveris: comparing voices in different stacks (%d vs %d)",
			v1.Measure.Stack.Index, v2.Measure.Stack.Index))
	}

	p1 := v1.Measure.Part
	p2 := v2.Measure.Part
	if p1 != p2 {
		return cmp.Compare(p1.Index, p2.Index)
	}

	if v1.Family != v2.Family {
		return cmp.Compare(v1.Family, v2.Family)
	}

	c1 := v1.FirstChord()
	c2 := v2.FirstChord()
	if c1 == nil {
		panic(fmt.Sprintf("audiveris: comparing a voice with no chords (voice %d)", v1.ID))
	}
	if c2 == nil {
		panic(fmt.Sprintf("audiveris: comparing a voice with no chords (voice %d)", v2.ID))
	}
	s1 := c1.Slot
	s2 := c2.Slot

	// Beware of whole-measure rests, they have no time slot.
	if s1 != nil && s2 != nil {
		if c := cmp.Compare(s1.ID, s2.ID); c != 0 {
			return c
		}
		// Same first time slot, fall back to chord ordinate.
		return cmp.Compare(c1.Center.Y, c2.Center.Y)
	}

	// At least one whole-measure voice, which starts on slot 1 by definition.
	if s2 != nil && s2.ID > 1 {
		return -1
	}
	if s1 != nil && s1.ID > 1 {
		return 1
	}

	// Both start the measure, use chord ordinates.
	return cmp.Compare(c1.Center.Y, c2.Center.Y)
}

const voiceAlpha = 200

// voiceColors is the fixed palette cycled by ColorOf.
var voiceColors = [...]color.RGBA{
	{R: 128, G: 64, B: 255, A: voiceAlpha},  // 1 purple
	{R: 0, G: 255, B: 0, A: voiceAlpha},     // 2 green
	{R: 165, G: 42, B: 42, A: voiceAlpha},   // 3 brown
	{R: 255, G: 0, B: 255, A: voiceAlpha},   // 4 magenta
	{R: 0, G: 255, B: 255, A: voiceAlpha},   // 5 cyan
	{R: 255, G: 200, B: 0, A: voiceAlpha},   // 6 orange
	{R: 255, G: 150, B: 150, A: voiceAlpha}, // 7 pink
	{R: 0, G: 128, B: 128, A: voiceAlpha},   // 8 blue-green
}

// ColorOf reports the color to paint elements of the voice with the given
// ID. The palette is used circularly, so congruent IDs share a color. The ID
// must be positive.
func ColorOf(id int) color.RGBA {
	if id < 1 {
		panic(fmt.Sprintf("audiveris: voice id must be positive, got %d", id))
	}
	return voiceColors[(id-1)%len(voiceColors)]
}

// ColorCount reports the number of defined voice colors.
func ColorCount() int {
	return len(voiceColors)
}
