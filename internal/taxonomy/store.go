package taxonomy

import "strings"

// Store is the read-only taxonomy tree. It is safe for concurrent use.
type Store struct {
	root  *Node
	stats Stats
}

// Stats counts nodes per level.
type Stats struct {
	Domains        int `json:"domains"`
	Recipients     int `json:"recipients"`
	Categories     int `json:"categories"`
	LeafCategories int `json:"leaf_categories"`
	Scenarios      int `json:"scenarios"`
}

func (s Stats) Nodes() int { return s.Domains + s.Recipients + s.Categories + s.Scenarios }

func newStore(root *Node) *Store {
	s := &Store{root: root}
	_ = s.Walk(func(path []string, n *Node) error {
		switch Level(len(path) - 1) {
		case LevelDomain:
			s.stats.Domains++
		case LevelRecipient:
			s.stats.Recipients++
		case LevelCategory:
			s.stats.Categories++
			if !n.HasChildren() {
				s.stats.LeafCategories++
			}
		case LevelScenario:
			s.stats.Scenarios++
		}
		return nil
	})
	return s
}

func (s *Store) Root() *Node { return s.root }

func (s *Store) Stats() Stats { return s.stats }

// Lineage returns the nodes along path, outermost first. The root is not included.
func (s *Store) Lineage(path []string) ([]*Node, error) {
	out := make([]*Node, 0, len(path))
	cur := s.root
	for i, raw := range path {
		id := strings.TrimSpace(raw)
		next, ok := cur.Child(id)
		if !ok {
			return nil, &PathNotFoundError{Path: clonePath(path), Level: Level(i), ID: id}
		}
		out = append(out, next)
		cur = next
	}
	return out, nil
}

// NodeAt returns the node reached by path. An empty path yields the root.
func (s *Store) NodeAt(path []string) (*Node, error) {
	lineage, err := s.Lineage(path)
	if err != nil {
		return nil, err
	}
	if len(lineage) == 0 {
		return s.root, nil
	}
	return lineage[len(lineage)-1], nil
}

// ChildrenAt lists the direct children of the node at path in document order.
func (s *Store) ChildrenAt(path []string) ([]Item, error) {
	n, err := s.NodeAt(path)
	if err != nil {
		return nil, err
	}
	return items(n.Children), nil
}

func (s *Store) HasChildren(path []string) (bool, error) {
	n, err := s.NodeAt(path)
	if err != nil {
		return false, err
	}
	return n.HasChildren(), nil
}

// Walk visits every node below the root depth-first in document order.
// The path slice is reused between calls.
func (s *Store) Walk(fn func(path []string, n *Node) error) error {
	var visit func(path []string, n *Node) error
	visit = func(path []string, n *Node) error {
		for _, c := range n.Children {
			p := append(path, c.ID)
			if err := fn(p, c); err != nil {
				return err
			}
			if err := visit(p, c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(make([]string, 0, MaxDepth), s.root)
}
