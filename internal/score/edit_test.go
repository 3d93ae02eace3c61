package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityKind_StringRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseEntityKind(kind.String())
		require.NoError(t, err, "kind %v", kind)
		assert.Equal(t, kind, parsed)
	}
}

func TestParseEntityKind_Unknown(t *testing.T) {
	_, err := ParseEntityKind("bogus")
	assert.ErrorContains(t, err, "unknown entity kind")
}

func TestEntityKind_IsRelation(t *testing.T) {
	relations := map[EntityKind]bool{
		KindAugmentationRelation:  true,
		KindBeamStemRelation:      true,
		KindChordTupletRelation:   true,
		KindDoubleDotRelation:     true,
		KindHeadStemRelation:      true,
		KindSameTimeRelation:      true,
		KindSameVoiceRelation:     true,
		KindSeparateTimeRelation:  true,
		KindSeparateVoiceRelation: true,
	}
	for _, kind := range Kinds() {
		assert.Equal(t, relations[kind], kind.IsRelation(), "kind %v", kind)
	}
}

func TestNewBatch(t *testing.T) {
	sys := buildSystem(t, 1, 1)

	b := NewBatch(sys, ModeUndo)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, ModeUndo, b.Mode)
	assert.Same(t, sys, b.System)

	b.Add(EditOp{Kind: KindHead, Action: ActionAdd}).
		Add(EditOp{Kind: KindStem, Action: ActionRemove})
	require.Len(t, b.Ops, 2)
	assert.Equal(t, KindHead, b.Ops[0].Kind)

	// Batch IDs are unique across batches.
	assert.NotEqual(t, b.ID, NewBatch(sys, ModeDo).ID)
}
