package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

type Level = taxonomy.Level

const (
	LevelDomain    = taxonomy.LevelDomain
	LevelRecipient = taxonomy.LevelRecipient
	LevelCategory  = taxonomy.LevelCategory
	LevelScenario  = taxonomy.LevelScenario
)

var ErrInvalidLevelOrder = errors.New("invalid level order")

// LevelOrderError is returned when a level is set before its parent, or with
// an empty id or an unknown level.
type LevelOrderError struct {
	Level  Level
	Reason string
}

func (e *LevelOrderError) Error() string {
	return fmt.Sprintf("cannot set %s: %s", e.Level, e.Reason)
}

func (e *LevelOrderError) Is(target error) bool { return target == ErrInvalidLevelOrder }

// ChildLookup is the part of the taxonomy the selection rules need.
type ChildLookup interface {
	HasChildren(path []string) (bool, error)
}

// Path is an immutable selection of up to four ids. The zero value is empty.
type Path struct {
	ids [taxonomy.MaxDepth]string
	n   int
}

// FromIDs builds a path one level at a time, so a scenario without a category
// (or any other gap) is rejected. Trailing empty ids are ignored.
func FromIDs(domain, recipient, category, scenario string) (Path, error) {
	ids := []string{domain, recipient, category, scenario}
	last := -1
	for i, id := range ids {
		if strings.TrimSpace(id) != "" {
			last = i
		}
	}
	var p Path
	for i := 0; i <= last; i++ {
		next, err := p.Set(Level(i), ids[i])
		if err != nil {
			return Path{}, err
		}
		p = next
	}
	return p, nil
}

// Set returns a copy with level set to id and every deeper level cleared.
func (p Path) Set(level Level, id string) (Path, error) {
	if !level.Valid() {
		return p, &LevelOrderError{Level: level, Reason: "unknown level"}
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return p, &LevelOrderError{Level: level, Reason: "empty id"}
	}
	if int(level) > p.n {
		return p, &LevelOrderError{Level: level, Reason: fmt.Sprintf("%s is not set", level-1)}
	}
	out := Path{n: int(level) + 1}
	copy(out.ids[:level], p.ids[:level])
	out.ids[level] = id
	return out, nil
}

// Get returns the id at level, or "" when unset.
func (p Path) Get(level Level) string {
	if !level.Valid() || int(level) >= p.n {
		return ""
	}
	return p.ids[level]
}

func (p Path) Depth() int { return p.n }

func (p Path) Domain() string    { return p.Get(LevelDomain) }
func (p Path) Recipient() string { return p.Get(LevelRecipient) }
func (p Path) Category() string  { return p.Get(LevelCategory) }
func (p Path) Scenario() string  { return p.Get(LevelScenario) }

// IDs returns the contiguous prefix of set ids.
func (p Path) IDs() []string {
	out := make([]string, p.n)
	copy(out, p.ids[:p.n])
	return out
}

// Truncate keeps the first depth levels.
func (p Path) Truncate(depth int) Path {
	if depth < 0 {
		depth = 0
	}
	if depth >= p.n {
		return p
	}
	var out Path
	copy(out.ids[:depth], p.ids[:depth])
	out.n = depth
	return out
}

// IsResolvable reports whether domain, recipient and category are all set.
func (p Path) IsResolvable() bool { return p.n > int(LevelCategory) }

// RequiresScenario reports whether the selected category has scenarios to pick from.
func (p Path) RequiresScenario(t ChildLookup) (bool, error) {
	if !p.IsResolvable() {
		return false, nil
	}
	return t.HasChildren(p.ids[:LevelScenario])
}

// Normalize drops a scenario selected under a category that has no children.
func (p Path) Normalize(t ChildLookup) (Path, error) {
	if p.n <= int(LevelScenario) {
		return p, nil
	}
	required, err := p.RequiresScenario(t)
	if err != nil {
		return p, err
	}
	if !required {
		return p.Truncate(int(LevelScenario)), nil
	}
	return p, nil
}

func (p Path) String() string { return strings.Join(p.ids[:p.n], "/") }

// Summary joins the given labels in path order, skipping empty ones.
func Summary(labels ...string) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " → ")
}
