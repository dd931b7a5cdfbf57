package rope

import (
	"fmt"
)

// Traverser is a read-only cursor over the tree of a rope, meant for
// inspecting its shape. Every move returns a new Traverser, the old one stays
// where it was and Back returns to it.
type Traverser struct {
	node  *Node
	level int
	prev  *Traverser
}

// NewTraverser starts at the root of a snapshot of r.
func NewTraverser(r *Rope) *Traverser {
	snap := r.Clone()
	return &Traverser{node: snap.root}
}

func (t *Traverser) Back() *Traverser {
	if t.prev == nil {
		return t
	}
	return t.prev
}

func (t *Traverser) Left() *Traverser {
	in, ok := t.node.NodeVal.(*Internal)
	if !ok || in.left == nil {
		return t
	}
	return &Traverser{node: in.left, level: t.level + 1, prev: t}
}

func (t *Traverser) Right() *Traverser {
	in, ok := t.node.NodeVal.(*Internal)
	if !ok || in.right == nil {
		return t
	}
	return &Traverser{node: in.right, level: t.level + 1, prev: t}
}

func (t *Traverser) Level() int {
	return t.level
}

func (t *Traverser) IsLeaf() bool {
	return t.node.IsLeaf()
}

func (t *Traverser) Weight() int {
	return t.node.Weight()
}

// Current describes the node under the cursor.
func (t *Traverser) Current() string {
	switch v := t.node.NodeVal.(type) {
	case *Leaf:
		return fmt.Sprintf("leaf on level %d: %d chars, %d/%d bytes, %q", t.level, v.Weight(), v.filled, MaxLeafLen, preview(v.String()))
	case *Internal:
		return fmt.Sprintf("internal on level %d: weight %d", t.level, v.weight)
	default:
		panic("Unknown node type")
	}
}

func preview(s string) string {
	const n = 24
	if len(s) <= n {
		return s
	}
	return s[:fitPrefix(s, n)] + "..."
}
