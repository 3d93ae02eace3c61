// Package scorefile reads score and edit-batch fixtures from YAML. It
// exists so the pipeline can be driven end to end from the CLI and from
// tests; it is not a persistence format for the score model.
package scorefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/S0urC10ud/audiveris/internal/score"
)

// Document is the YAML form of a score. Chords and notes may carry string
// IDs so slurs and same-voice edges can reference them.
type Document struct {
	LogicalParts []string   `yaml:"logical_parts"`
	Pages        []PageDoc  `yaml:"pages"`
	Slurs        []SlurDoc  `yaml:"slurs,omitempty"`
	SameVoice    [][]string `yaml:"same_voice,omitempty"`
}

type PageDoc struct {
	Systems []SystemDoc `yaml:"systems"`
}

type SystemDoc struct {
	Parts  []int      `yaml:"parts"`
	Stacks []StackDoc `yaml:"stacks"`
}

type StackDoc struct {
	Left     int          `yaml:"left"`
	Right    int          `yaml:"right"`
	Measures []MeasureDoc `yaml:"measures"`
}

type MeasureDoc struct {
	Part   int        `yaml:"part"`
	Voices []VoiceDoc `yaml:"voices"`
}

type VoiceDoc struct {
	Family string     `yaml:"family,omitempty"`
	Chords []ChordDoc `yaml:"chords"`
}

type ChordDoc struct {
	ID        string    `yaml:"id,omitempty"`
	Slot      int       `yaml:"slot,omitempty"`
	Y         int       `yaml:"y"`
	Preferred int       `yaml:"preferred,omitempty"`
	Notes     []NoteDoc `yaml:"notes,omitempty"`
}

// NoteDoc unmarshals from either a bare pitch scalar or a {id, pitch} map.
type NoteDoc struct {
	ID    string `yaml:"id,omitempty"`
	Pitch int    `yaml:"pitch"`
}

func (n *NoteDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&n.Pitch)
	}
	type plain NoteDoc
	return value.Decode((*plain)(n))
}

type SlurDoc struct {
	ID            string `yaml:"id"`
	Tie           bool   `yaml:"tie,omitempty"`
	Left          string `yaml:"left,omitempty"`
	Right         string `yaml:"right,omitempty"`
	LeftExtension string `yaml:"left_extension,omitempty"`
}

// Parse builds a score model from YAML fixture data.
func Parse(data []byte) (*score.Score, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scorefile: parse: %w", err)
	}
	return build(&doc)
}

// Load reads and parses a score fixture file.
func Load(path string) (*score.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scorefile: read %s: %w", path, err)
	}
	return Parse(data)
}

func build(doc *Document) (*score.Score, error) {
	sc := score.NewScore()
	lps := make(map[int]*score.LogicalPart)
	for _, name := range doc.LogicalParts {
		lp := sc.AddLogicalPart(name)
		lps[lp.ID] = lp
	}

	notes := make(map[string]*score.Note)
	chords := make(map[string]*score.Chord)

	for pi, pd := range doc.Pages {
		page := sc.AddPage()
		for si, sd := range pd.Systems {
			system := page.AddSystem()
			for _, id := range sd.Parts {
				lp, ok := lps[id]
				if !ok {
					return nil, fmt.Errorf("scorefile: page %d system %d: unknown logical part %d", pi+1, si+1, id)
				}
				system.AddPart(lp)
			}
			for _, std := range sd.Stacks {
				stack := system.AddStack(std.Left, std.Right)
				for _, md := range std.Measures {
					part := system.PartByLogical(md.Part)
					if part == nil {
						return nil, fmt.Errorf("scorefile: page %d system %d: measure for absent part %d", pi+1, si+1, md.Part)
					}
					measure := stack.MeasureFor(part)
					for _, vd := range md.Voices {
						family, err := parseFamily(vd.Family)
						if err != nil {
							return nil, fmt.Errorf("scorefile: page %d system %d: %w", pi+1, si+1, err)
						}
						voice := measure.AddVoice(family)
						for _, cd := range vd.Chords {
							chord := voice.AddChord(cd.Slot, cd.Y)
							chord.PreferredVoiceID = cd.Preferred
							if cd.ID != "" {
								if _, dup := chords[cd.ID]; dup {
									return nil, fmt.Errorf("scorefile: duplicate chord id %q", cd.ID)
								}
								chords[cd.ID] = chord
							}
							for _, nd := range cd.Notes {
								note := chord.AddNote(nd.Pitch)
								if nd.ID != "" {
									if _, dup := notes[nd.ID]; dup {
										return nil, fmt.Errorf("scorefile: duplicate note id %q", nd.ID)
									}
									notes[nd.ID] = note
								}
							}
						}
					}
				}
			}
		}
	}

	if err := wireSlurs(doc, notes); err != nil {
		return nil, err
	}

	for _, edge := range doc.SameVoice {
		if len(edge) != 2 {
			return nil, fmt.Errorf("scorefile: same_voice edge needs exactly 2 chord ids, got %d", len(edge))
		}
		a, ok := chords[edge[0]]
		if !ok {
			return nil, fmt.Errorf("scorefile: same_voice: unknown chord %q", edge[0])
		}
		b, ok := chords[edge[1]]
		if !ok {
			return nil, fmt.Errorf("scorefile: same_voice: unknown chord %q", edge[1])
		}
		if a.Measure.Part.System != b.Measure.Part.System {
			return nil, fmt.Errorf("scorefile: same_voice edge %q-%q crosses systems", edge[0], edge[1])
		}
		a.Measure.Part.System.Relations.AddSameVoice(a, b)
	}

	return sc, nil
}

func wireSlurs(doc *Document, notes map[string]*score.Note) error {
	slurs := make(map[string]*score.Slur)

	for _, sd := range doc.Slurs {
		if sd.ID == "" {
			return fmt.Errorf("scorefile: slur without id")
		}
		slur := &score.Slur{ID: sd.ID, Tie: sd.Tie}

		var owner *score.Part
		if sd.Left != "" {
			n, ok := notes[sd.Left]
			if !ok {
				return fmt.Errorf("scorefile: slur %s: unknown note %q", sd.ID, sd.Left)
			}
			slur.SetHead(score.Left, n)
			owner = n.Chord.Measure.Part
		}
		if sd.Right != "" {
			n, ok := notes[sd.Right]
			if !ok {
				return fmt.Errorf("scorefile: slur %s: unknown note %q", sd.ID, sd.Right)
			}
			slur.SetHead(score.Right, n)
			if owner == nil {
				owner = n.Chord.Measure.Part
			}
		}
		if owner == nil {
			return fmt.Errorf("scorefile: slur %s has no attached note", sd.ID)
		}
		owner.AddSlur(slur)
		slurs[sd.ID] = slur
	}

	// Extensions in a second pass, once every slur exists.
	for _, sd := range doc.Slurs {
		if sd.LeftExtension == "" {
			continue
		}
		prev, ok := slurs[sd.LeftExtension]
		if !ok {
			return fmt.Errorf("scorefile: slur %s: unknown extension %q", sd.ID, sd.LeftExtension)
		}
		slurs[sd.ID].SetExtension(score.Left, prev)
	}
	return nil
}

func parseFamily(name string) (score.Family, error) {
	switch name {
	case "", "slot":
		return score.FamilySlot, nil
	case "measure":
		return score.FamilyMeasure, nil
	case "cue":
		return score.FamilyCue, nil
	}
	return 0, fmt.Errorf("unknown voice family %q", name)
}
