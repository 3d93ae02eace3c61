package audiveris

import "github.com/S0urC10ud/audiveris/internal/score"

// Public aliases for the internal score types used in the pipeline API.
// An alias is identical to its internal type at compile time, so no
// conversion is ever needed.

type Score = score.Score
type Page = score.Page
type System = score.System
type Part = score.Part
type LogicalPart = score.LogicalPart
type MeasureStack = score.MeasureStack
type Measure = score.Measure
type Voice = score.Voice
type Chord = score.Chord
type Slot = score.Slot
type Note = score.Note
type Slur = score.Slur
type Point = score.Point
type Family = score.Family
type HSide = score.HSide
type EditOp = score.EditOp
type EditBatch = score.EditBatch
type EntityKind = score.EntityKind
type Action = score.Action
type OpMode = score.OpMode

// Re-exported constructors, so consumers never import the internal package.

// NewScore returns an empty score.
func NewScore() *Score { return score.NewScore() }

// NewBatch creates an empty edit batch against the given system.
func NewBatch(system *System, mode OpMode) *EditBatch { return score.NewBatch(system, mode) }

// ParseEntityKind resolves an entity kind from its string form.
func ParseEntityKind(name string) (EntityKind, error) { return score.ParseEntityKind(name) }

// Kinds returns every defined entity kind.
func Kinds() []EntityKind { return score.Kinds() }

const (
	Left  = score.Left
	Right = score.Right
)

const (
	FamilyMeasure = score.FamilyMeasure
	FamilySlot    = score.FamilySlot
	FamilyCue     = score.FamilyCue
)

const (
	ActionAdd    = score.ActionAdd
	ActionRemove = score.ActionRemove
	ActionModify = score.ActionModify
)

const (
	ModeDo   = score.ModeDo
	ModeUndo = score.ModeUndo
	ModeRedo = score.ModeRedo
)

const (
	KindNone = score.KindNone

	KindAugmentationDot = score.KindAugmentationDot
	KindBarline         = score.KindBarline
	KindBeam            = score.KindBeam
	KindBeamHook        = score.KindBeamHook
	KindBrace           = score.KindBrace
	KindFlag            = score.KindFlag
	KindHead            = score.KindHead
	KindHeadChord       = score.KindHeadChord
	KindMeasureStack    = score.KindMeasureStack
	KindRest            = score.KindRest
	KindRestChord       = score.KindRestChord
	KindSlur            = score.KindSlur
	KindSmallBeam       = score.KindSmallBeam
	KindSmallChord      = score.KindSmallChord
	KindSmallFlag       = score.KindSmallFlag
	KindStaffBarline    = score.KindStaffBarline
	KindStem            = score.KindStem
	KindTimeNumber      = score.KindTimeNumber
	KindTimeSignature   = score.KindTimeSignature
	KindTuplet          = score.KindTuplet

	KindAugmentationRelation  = score.KindAugmentationRelation
	KindBeamStemRelation      = score.KindBeamStemRelation
	KindChordTupletRelation   = score.KindChordTupletRelation
	KindDoubleDotRelation     = score.KindDoubleDotRelation
	KindHeadStemRelation      = score.KindHeadStemRelation
	KindSameTimeRelation      = score.KindSameTimeRelation
	KindSameVoiceRelation     = score.KindSameVoiceRelation
	KindSeparateTimeRelation  = score.KindSeparateTimeRelation
	KindSeparateVoiceRelation = score.KindSeparateVoiceRelation

	KindSystemMerge = score.KindSystemMerge
)
