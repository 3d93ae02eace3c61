package audiveris

import (
	"fmt"
	"strings"

	"github.com/S0urC10ud/audiveris/internal/score"
)

// ImpactScope is the invalidation reach of one entity kind.
type ImpactScope int

const (
	// ScopeNone: edits to this kind never affect rhythm data.
	ScopeNone ImpactScope = iota

	// ScopeStack: the timing effect cannot cross a measure-stack boundary.
	ScopeStack

	// ScopePage: the effect can ripple across the whole page.
	ScopePage
)

// kindScopes is the static classification table. Kinds absent from the map
// are ScopeNone. The two populated scopes are disjoint by construction; an
// exhaustive test enumerates every kind against this table.
var kindScopes = map[score.EntityKind]ImpactScope{
	// Stack-scoped entities.
	score.KindAugmentationDot: ScopeStack,
	score.KindBarline:         ScopeStack,
	score.KindBeam:            ScopeStack,
	score.KindBeamHook:        ScopeStack,
	score.KindFlag:            ScopeStack,
	score.KindHead:            ScopeStack,
	score.KindHeadChord:       ScopeStack,
	score.KindMeasureStack:    ScopeStack,
	score.KindRest:            ScopeStack,
	score.KindRestChord:       ScopeStack,
	score.KindSmallBeam:       ScopeStack,
	score.KindSmallChord:      ScopeStack,
	score.KindSmallFlag:       ScopeStack,
	score.KindStaffBarline:    ScopeStack,
	score.KindStem:            ScopeStack,
	score.KindTuplet:          ScopeStack,

	// Stack-scoped relations.
	score.KindAugmentationRelation:  ScopeStack,
	score.KindBeamStemRelation:      ScopeStack,
	score.KindChordTupletRelation:   ScopeStack,
	score.KindDoubleDotRelation:     ScopeStack,
	score.KindHeadStemRelation:      ScopeStack,
	score.KindSameTimeRelation:      ScopeStack,
	score.KindSameVoiceRelation:     ScopeStack,
	score.KindSeparateTimeRelation:  ScopeStack,
	score.KindSeparateVoiceRelation: ScopeStack,

	// Page-scoped kinds: time changes, part merges via braces, slurs
	// (possibility of ties), system merges.
	score.KindBrace:         ScopePage,
	score.KindSlur:          ScopePage,
	score.KindTimeNumber:    ScopePage,
	score.KindTimeSignature: ScopePage,
	score.KindSystemMerge:   ScopePage,
}

// ScopeOf reports the invalidation scope of an entity kind.
func ScopeOf(kind score.EntityKind) ImpactScope {
	return kindScopes[kind]
}

// IsImpactedBy reports whether an edit to the given kind affects rhythm data
// at all.
func IsImpactedBy(kind score.EntityKind) bool {
	return kindScopes[kind] != ScopeNone
}

// Impact is the outcome of classifying an edit batch: either the whole page
// must be reprocessed, or just the listed measure stacks. Stacks are kept in
// insertion order without duplicates. WholePage overrides the stack set.
type Impact struct {
	WholePage bool
	Page      *score.Page
	Stacks    []*score.MeasureStack
}

func (im *Impact) addStack(stack *score.MeasureStack) {
	if stack == nil {
		return
	}
	for _, st := range im.Stacks {
		if st == stack {
			return
		}
	}
	im.Stacks = append(im.Stacks, stack)
}

func (im Impact) String() string {
	var sb strings.Builder
	sb.WriteString("RhythmsImpact{")
	fmt.Fprintf(&sb, "page:%v stacks:[", im.WholePage)
	for i, st := range im.Stacks {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "#%d", st.Index+1)
	}
	sb.WriteString("]}")
	return sb.String()
}

// Classify determines what a batch of edits invalidates. Page-scoped kinds
// force whole-page reprocessing regardless of any stack-scoped edits in the
// same batch. Stack-scoped entities map to the stack spatially containing
// them; an entity outside every stack contributes nothing (missing evidence,
// not an error). Relation edits impact the stacks of both endpoints.
//
// Barline edits shift measure boundaries, so a barline addition applied
// forward (or a barline removal being undone) also invalidates the next
// sibling stack.
func Classify(batch *score.EditBatch) Impact {
	var impact Impact

	for _, op := range batch.Ops {
		switch {
		case op.Page != nil:
			// Document-unit operation: reprocess that page.
			impact.WholePage = true
			impact.Page = op.Page

		case op.Stack != nil:
			if ScopeOf(score.KindMeasureStack) == ScopeStack {
				impact.addStack(op.Stack)
			}

		case op.Kind.IsRelation():
			if ScopeOf(op.Kind) == ScopeStack {
				impact.addStack(batch.System.StackAt(op.Source))
				impact.addStack(batch.System.StackAt(op.Target))
			}

		default:
			switch ScopeOf(op.Kind) {
			case ScopePage:
				impact.WholePage = true
			case ScopeStack:
				stack := batch.System.StackAt(op.Center)
				if stack == nil {
					continue
				}
				impact.addStack(stack)

				if op.Kind == score.KindBarline || op.Kind == score.KindStaffBarline {
					undo := batch.Mode == score.ModeUndo
					if (op.Action == score.ActionRemove && undo) ||
						(op.Action == score.ActionAdd && !undo) {
						// The measure boundary moved: the next stack is
						// reshaped as well.
						impact.addStack(stack.NextSibling())
					}
				}
			}
		}
	}

	if impact.Page == nil {
		impact.Page = batch.System.Page
	}
	return impact
}
