package taxonomy

import (
	"fmt"
	"strings"
)

// Level is a position in the four-level hierarchy.
type Level int

const (
	LevelDomain Level = iota
	LevelRecipient
	LevelCategory
	LevelScenario
)

// MaxDepth is the number of selectable levels below the root.
const MaxDepth = 4

func (l Level) String() string {
	switch l {
	case LevelDomain:
		return "domain"
	case LevelRecipient:
		return "recipient"
	case LevelCategory:
		return "category"
	case LevelScenario:
		return "scenario"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

func (l Level) Valid() bool { return l >= LevelDomain && l <= LevelScenario }

type Pressure string

const (
	PressureHigh   Pressure = "high"
	PressureNormal Pressure = "normal"
	PressureLow    Pressure = "low"
)

// ParsePressure is case-insensitive and rejects anything outside high/normal/low.
func ParsePressure(raw string) (Pressure, error) {
	switch p := Pressure(strings.ToLower(strings.TrimSpace(raw))); p {
	case PressureHigh, PressureNormal, PressureLow:
		return p, nil
	default:
		return "", fmt.Errorf("unknown pressure %q (want high, normal or low)", raw)
	}
}

// Metadata holds per-node guidance. An empty field is absent and inherits from ancestors.
type Metadata struct {
	IntentFocus string   `json:"intent_focus,omitempty" yaml:"intent_focus,omitempty"`
	ToneHint    string   `json:"tone_hint,omitempty" yaml:"tone_hint,omitempty"`
	Pressure    Pressure `json:"pressure,omitempty" yaml:"pressure,omitempty"`
	ContextHint string   `json:"context_hint,omitempty" yaml:"context_hint,omitempty"`
}

func (m *Metadata) IsZero() bool {
	return m == nil || (m.IntentFocus == "" && m.ToneHint == "" && m.Pressure == "" && m.ContextHint == "")
}

// Node is one taxonomy entry. Nodes are shared and must not be modified after Load.
type Node struct {
	ID       string
	Label    string
	Metadata *Metadata
	Children []*Node

	index map[string]int
}

// Child looks up a direct child by id.
func (n *Node) Child(id string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	i, ok := n.index[strings.TrimSpace(id)]
	if !ok {
		return nil, false
	}
	return n.Children[i], true
}

func (n *Node) HasChildren() bool { return n != nil && len(n.Children) > 0 }

func (n *Node) Item() Item { return Item{ID: n.ID, Label: n.Label} }

// Item is the navigation view of a node.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func items(nodes []*Node) []Item {
	out := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Item())
	}
	return out
}
