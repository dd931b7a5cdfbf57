package rope

import (
	"iter"
)

// LeafIterator walks the leaves of a tree from left to right. It is lazy and
// single pass, build a new one to start over.
type LeafIterator struct {
	stack []*Node
	cur   *Leaf
}

func NewLeafIterator(root *Node) *LeafIterator {
	it := &LeafIterator{}
	if root != nil {
		it.stack = append(it.stack, root)
	}
	return it
}

// Next moves to the next leaf and reports whether there was one.
func (it *LeafIterator) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		switch v := n.NodeVal.(type) {
		case *Leaf:
			it.cur = v
			return true
		case *Internal:
			// right first, so that left is popped first
			it.stack = append(it.stack, v.right, v.left)
		default:
			panic("Unknown node type")
		}
	}
	it.cur = nil
	return false
}

// Bytes returns the current leaf content. It is only valid until the rope is written to.
func (it *LeafIterator) Bytes() []byte {
	if it.cur == nil {
		return nil
	}
	return it.cur.Bytes()
}

func (it *LeafIterator) Text() string {
	return string(it.Bytes())
}

// Leaves yields the text of every leaf in document order. It iterates over a
// snapshot, so writing to r while ranging is fine.
func (r *Rope) Leaves() iter.Seq[string] {
	snap := r.Clone()
	return func(yield func(string) bool) {
		it := NewLeafIterator(snap.root)
		for it.Next() {
			if !yield(it.Text()) {
				return
			}
		}
	}
}
