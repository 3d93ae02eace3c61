package score

import (
	"fmt"

	"github.com/google/uuid"
)

// EntityKind tags the subject of an edit operation: either a scored entity
// or a relation between two entities. The root package maps each kind to an
// invalidation scope through a static table.
type EntityKind int

const (
	KindNone EntityKind = iota

	// Entities.
	KindAugmentationDot
	KindBarline
	KindBeam
	KindBeamHook
	KindBrace
	KindFlag
	KindHead
	KindHeadChord
	KindMeasureStack
	KindRest
	KindRestChord
	KindSlur
	KindSmallBeam
	KindSmallChord
	KindSmallFlag
	KindStaffBarline
	KindStem
	KindTimeNumber
	KindTimeSignature
	KindTuplet

	// Relations.
	KindAugmentationRelation
	KindBeamStemRelation
	KindChordTupletRelation
	KindDoubleDotRelation
	KindHeadStemRelation
	KindSameTimeRelation
	KindSameVoiceRelation
	KindSeparateTimeRelation
	KindSeparateVoiceRelation

	// Document-unit operations.
	KindSystemMerge

	kindCount // keep last
)

var kindNames = map[EntityKind]string{
	KindNone:                  "none",
	KindAugmentationDot:       "augmentation-dot",
	KindBarline:               "barline",
	KindBeam:                  "beam",
	KindBeamHook:              "beam-hook",
	KindBrace:                 "brace",
	KindFlag:                  "flag",
	KindHead:                  "head",
	KindHeadChord:             "head-chord",
	KindMeasureStack:          "measure-stack",
	KindRest:                  "rest",
	KindRestChord:             "rest-chord",
	KindSlur:                  "slur",
	KindSmallBeam:             "small-beam",
	KindSmallChord:            "small-chord",
	KindSmallFlag:             "small-flag",
	KindStaffBarline:          "staff-barline",
	KindStem:                  "stem",
	KindTimeNumber:            "time-number",
	KindTimeSignature:         "time-signature",
	KindTuplet:                "tuplet",
	KindAugmentationRelation:  "augmentation-relation",
	KindBeamStemRelation:      "beam-stem-relation",
	KindChordTupletRelation:   "chord-tuplet-relation",
	KindDoubleDotRelation:     "double-dot-relation",
	KindHeadStemRelation:      "head-stem-relation",
	KindSameTimeRelation:      "same-time-relation",
	KindSameVoiceRelation:     "same-voice-relation",
	KindSeparateTimeRelation:  "separate-time-relation",
	KindSeparateVoiceRelation: "separate-voice-relation",
	KindSystemMerge:           "system-merge",
}

func (k EntityKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsRelation reports whether the kind tags an edge between two entities
// rather than an entity itself.
func (k EntityKind) IsRelation() bool {
	return k >= KindAugmentationRelation && k <= KindSeparateVoiceRelation
}

// Kinds returns every defined kind except KindNone, for exhaustive checks.
func Kinds() []EntityKind {
	out := make([]EntityKind, 0, int(kindCount)-1)
	for k := KindNone + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseEntityKind resolves a kind from its string form.
func ParseEntityKind(name string) (EntityKind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown entity kind %q", name)
}

// Action is what an edit operation does to its subject.
type Action int

const (
	ActionAdd Action = iota
	ActionRemove
	ActionModify
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionModify:
		return "modify"
	}
	return "unknown"
}

// OpMode is the direction a batch is being applied in. A whole batch shares
// one mode: a redo replays the forward effect, an undo reverses it.
type OpMode int

const (
	ModeDo OpMode = iota
	ModeUndo
	ModeRedo
)

func (m OpMode) String() string {
	switch m {
	case ModeDo:
		return "do"
	case ModeUndo:
		return "undo"
	case ModeRedo:
		return "redo"
	}
	return "unknown"
}

// EditOp is one edit within a batch. Exactly one subject form applies:
// entity ops carry Center, relation ops carry Source and Target, stack ops
// carry Stack, and document-unit ops carry Page.
type EditOp struct {
	Kind   EntityKind
	Action Action

	Center Point         // entity subject location
	Source Point         // relation source location
	Target Point         // relation target location
	Stack  *MeasureStack // direct stack subject
	Page   *Page         // document-unit subject
}

// EditBatch is an ordered group of edits applied together against one
// system, in one mode.
type EditBatch struct {
	ID     string
	Mode   OpMode
	System *System
	Ops    []EditOp
}

// NewBatch creates an empty batch against the given system, with a fresh
// identifier for logging and reporting.
func NewBatch(system *System, mode OpMode) *EditBatch {
	return &EditBatch{ID: uuid.NewString(), Mode: mode, System: system}
}

// Add appends an op and returns the batch for chaining.
func (b *EditBatch) Add(op EditOp) *EditBatch {
	b.Ops = append(b.Ops, op)
	return b
}
