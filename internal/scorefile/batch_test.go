package scorefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S0urC10ud/audiveris/internal/score"
)

func batchScore(t *testing.T) *score.Score {
	t.Helper()
	sc, err := Parse([]byte(`
logical_parts: [Violin]
pages:
  - systems:
      - parts: [1]
        stacks:
          - {left: 0, right: 99}
          - {left: 100, right: 199}
`))
	require.NoError(t, err)
	return sc
}

func TestParseBatch(t *testing.T) {
	sc := batchScore(t)

	batch, err := ParseBatch([]byte(`
mode: undo
page: 1
system: 1
ops:
  - {kind: head, action: remove, at: {x: 120, y: 30}}
  - {kind: head-stem-relation, action: add, source: {x: 10}, target: {x: 150}}
  - {kind: measure-stack, action: modify, stack: 2}
  - {kind: system-merge, action: modify}
`), sc)
	require.NoError(t, err)

	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, score.ModeUndo, batch.Mode)
	assert.Same(t, sc.Pages[0].Systems[0], batch.System)
	require.Len(t, batch.Ops, 4)

	head := batch.Ops[0]
	assert.Equal(t, score.KindHead, head.Kind)
	assert.Equal(t, score.ActionRemove, head.Action)
	assert.Equal(t, score.Point{X: 120, Y: 30}, head.Center)

	rel := batch.Ops[1]
	assert.Equal(t, score.KindHeadStemRelation, rel.Kind)
	assert.Equal(t, score.Point{X: 10}, rel.Source)
	assert.Equal(t, score.Point{X: 150}, rel.Target)

	assert.Same(t, batch.System.Stacks[1], batch.Ops[2].Stack)
	assert.Same(t, sc.Pages[0], batch.Ops[3].Page)
}

func TestParseBatch_Defaults(t *testing.T) {
	sc := batchScore(t)

	batch, err := ParseBatch([]byte(`
page: 1
system: 1
ops:
  - {kind: head, at: {x: 10}}
`), sc)
	require.NoError(t, err)
	assert.Equal(t, score.ModeDo, batch.Mode)
	assert.Equal(t, score.ActionAdd, batch.Ops[0].Action)
}

func TestParseBatch_Errors(t *testing.T) {
	sc := batchScore(t)

	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"bad mode", "mode: sideways\npage: 1\nsystem: 1", `unknown op mode "sideways"`},
		{"no page", "page: 9\nsystem: 1", "no page 9"},
		{"no system", "page: 1\nsystem: 3", "no system 3 on page 1"},
		{"bad kind", "page: 1\nsystem: 1\nops:\n  - {kind: gremlin}", "unknown entity kind"},
		{"bad action", "page: 1\nsystem: 1\nops:\n  - {kind: head, action: smudge}", `unknown action "smudge"`},
		{"bad stack", "page: 1\nsystem: 1\nops:\n  - {kind: measure-stack, stack: 5}", "no stack 5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBatch([]byte(tc.doc), sc)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
