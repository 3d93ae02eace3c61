package scorefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/S0urC10ud/audiveris/internal/score"
)

// BatchDoc is the YAML form of an edit batch, addressed against a score by
// 1-based page and system numbers.
type BatchDoc struct {
	Mode   string  `yaml:"mode,omitempty"`
	Page   int     `yaml:"page"`
	System int     `yaml:"system"`
	Ops    []OpDoc `yaml:"ops"`
}

type OpDoc struct {
	Kind   string   `yaml:"kind"`
	Action string   `yaml:"action,omitempty"`
	At     PointDoc `yaml:"at,omitempty"`
	Source PointDoc `yaml:"source,omitempty"`
	Target PointDoc `yaml:"target,omitempty"`
	Stack  int      `yaml:"stack,omitempty"` // 1-based stack subject
}

type PointDoc struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseBatch builds an edit batch from YAML data, resolving its system
// against the given score.
func ParseBatch(data []byte, sc *score.Score) (*score.EditBatch, error) {
	var doc BatchDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scorefile: parse batch: %w", err)
	}

	mode, err := parseMode(doc.Mode)
	if err != nil {
		return nil, fmt.Errorf("scorefile: %w", err)
	}

	page := sc.Page(doc.Page)
	if page == nil {
		return nil, fmt.Errorf("scorefile: batch: no page %d", doc.Page)
	}
	if doc.System < 1 || doc.System > len(page.Systems) {
		return nil, fmt.Errorf("scorefile: batch: no system %d on page %d", doc.System, doc.Page)
	}
	system := page.Systems[doc.System-1]

	batch := score.NewBatch(system, mode)
	for i, od := range doc.Ops {
		kind, err := score.ParseEntityKind(od.Kind)
		if err != nil {
			return nil, fmt.Errorf("scorefile: batch op %d: %w", i+1, err)
		}
		action, err := parseAction(od.Action)
		if err != nil {
			return nil, fmt.Errorf("scorefile: batch op %d: %w", i+1, err)
		}

		op := score.EditOp{
			Kind:   kind,
			Action: action,
			Center: score.Point{X: od.At.X, Y: od.At.Y},
			Source: score.Point{X: od.Source.X, Y: od.Source.Y},
			Target: score.Point{X: od.Target.X, Y: od.Target.Y},
		}
		if kind == score.KindSystemMerge {
			op.Page = page
		}
		if od.Stack > 0 {
			if od.Stack > len(system.Stacks) {
				return nil, fmt.Errorf("scorefile: batch op %d: no stack %d", i+1, od.Stack)
			}
			op.Stack = system.Stacks[od.Stack-1]
		}
		batch.Add(op)
	}
	return batch, nil
}

// LoadBatch reads and parses an edit-batch fixture file against sc.
func LoadBatch(path string, sc *score.Score) (*score.EditBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scorefile: read %s: %w", path, err)
	}
	return ParseBatch(data, sc)
}

func parseMode(name string) (score.OpMode, error) {
	switch name {
	case "", "do":
		return score.ModeDo, nil
	case "undo":
		return score.ModeUndo, nil
	case "redo":
		return score.ModeRedo, nil
	}
	return 0, fmt.Errorf("unknown op mode %q", name)
}

func parseAction(name string) (score.Action, error) {
	switch name {
	case "", "add":
		return score.ActionAdd, nil
	case "remove":
		return score.ActionRemove, nil
	case "modify":
		return score.ActionModify, nil
	}
	return 0, fmt.Errorf("unknown action %q", name)
}
