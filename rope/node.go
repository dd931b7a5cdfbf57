package rope

import (
	"unicode/utf8"
)

// Weighted is implemented by everything that can sit in the tree.
type Weighted interface {
	// Weight is the character count of a leaf, or of the left subtree of an internal node.
	Weight() int
}

// Type of node values.
// Each node is either an *Internal or a *Leaf.
type NodeVal interface {
	Weighted
	isNode()
}

// Type of the nodes in the tree
type Node struct {
	cow *copyOnWriteContext
	NodeVal
}

// Internal is a branch of the tree. It holds no text, only the routing weight.
type Internal struct {
	weight      int
	left, right *Node
}

func (*Internal) isNode() {}

func (in *Internal) Weight() int {
	return in.weight
}

func (in *Internal) Left() *Node {
	return in.left
}

func (in *Internal) Right() *Node {
	return in.right
}

func (n *Node) IsLeaf() bool {
	_, ok := n.NodeVal.(*Leaf)
	return ok
}

func (n *Node) leaf() *Leaf {
	leaf, ok := n.NodeVal.(*Leaf)
	if !ok {
		panic("Internal node has no leaf")
	}
	return leaf
}

// chars counts every character below n.
func (n *Node) chars() int {
	switch v := n.NodeVal.(type) {
	case *Leaf:
		return v.Weight()
	case *Internal:
		return v.weight + v.right.chars()
	default:
		panic("Unknown node type")
	}
}

// height is the number of edges on the longest path down to a leaf.
func (n *Node) height() int {
	in, ok := n.NodeVal.(*Internal)
	if !ok {
		return 0
	}
	return 1 + max(in.left.height(), in.right.height())
}

// buildNode splits text at its character midpoint until every piece fits a leaf.
// text must be valid UTF-8.
func (c *copyOnWriteContext) buildNode(text string) *Node {
	if len(text) <= MaxLeafLen {
		n := c.newLeafNode()
		n.leaf().appendString(text)
		return n
	}
	chars := utf8.RuneCountInString(text)
	mid := byteOffset(text, chars/2)
	left, right := text[:mid], text[mid:]
	return c.newInternal(c.buildNode(left), c.buildNode(right), chars/2)
}

// rootFor wraps a bare leaf so that the root of a rope is always internal.
func (c *copyOnWriteContext) rootFor(n *Node) *Node {
	if leaf, ok := n.NodeVal.(*Leaf); ok {
		return c.newInternal(n, c.newLeafNode(), leaf.Weight())
	}
	return n
}
