package taxonomy

const (
	BaselineToneHint    = "Professional and appropriate."
	BaselineContextHint = "The situation is practical and real, not hypothetical."
	BaselinePressure    = PressureNormal

	// SourceBaseline marks a field that no node supplied.
	SourceBaseline = "baseline"
	// SourceRoot marks a field supplied by the document root.
	SourceRoot = "root"
)

// Resolved is the effective metadata for a path after inheritance.
type Resolved struct {
	IntentFocus string   `json:"intent_focus"`
	ToneHint    string   `json:"tone_hint"`
	Pressure    Pressure `json:"pressure"`
	ContextHint string   `json:"context_hint"`

	// Sources maps each field name to the level that supplied it.
	Sources map[string]string `json:"sources"`
}

// ResolveMetadata takes each field from the deepest node on path that defines it,
// then from the root, then from the baseline. A missing intent focus falls back
// to the deepest node's label and is sourced to that node's level.
func (s *Store) ResolveMetadata(path []string) (Resolved, error) {
	lineage, err := s.Lineage(path)
	if err != nil {
		return Resolved{}, err
	}
	return resolve(s.root, lineage), nil
}

func resolve(root *Node, lineage []*Node) Resolved {
	out := Resolved{Sources: make(map[string]string, len(metadataFields))}

	lookup := func(field string) string {
		for i := len(lineage) - 1; i >= 0; i-- {
			if v := lineage[i].Metadata.field(field); v != "" {
				out.Sources[field] = Level(i).String()
				return v
			}
		}
		if v := root.Metadata.field(field); v != "" {
			out.Sources[field] = SourceRoot
			return v
		}
		out.Sources[field] = SourceBaseline
		return ""
	}

	out.IntentFocus = lookup("intent_focus")
	if out.IntentFocus == "" && len(lineage) > 0 {
		out.IntentFocus = lineage[len(lineage)-1].Label
		out.Sources["intent_focus"] = Level(len(lineage) - 1).String()
	}
	if out.ToneHint = lookup("tone_hint"); out.ToneHint == "" {
		out.ToneHint = BaselineToneHint
	}
	if out.Pressure = Pressure(lookup("pressure")); out.Pressure == "" {
		out.Pressure = BaselinePressure
	}
	if out.ContextHint = lookup("context_hint"); out.ContextHint == "" {
		out.ContextHint = BaselineContextHint
	}
	return out
}

func (m *Metadata) field(name string) string {
	if m == nil {
		return ""
	}
	switch name {
	case "intent_focus":
		return m.IntentFocus
	case "tone_hint":
		return m.ToneHint
	case "pressure":
		return string(m.Pressure)
	case "context_hint":
		return m.ContextHint
	}
	return ""
}
