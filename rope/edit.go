package rope

import (
	"github.com/cockroachdb/errors"
)

// nodeResult tells the parent whether its child has to be swapped out.
// A nil replacement means the child was edited in place.
type nodeResult struct {
	replacement *Node
}

var editedInPlace = nodeResult{}

func replaceWith(n *Node) nodeResult {
	return nodeResult{replacement: n}
}

// editContext carries the parameters of one edit down the tree.
type editContext struct {
	// index relative to the subtree currently visited
	index int
	text  string
	chars int
	// delta is the change in characters, set by the leaf once the edit is done
	delta int
}

type leafFunc func(cow *copyOnWriteContext, ctx *editContext, n *Node) (nodeResult, error)

// doAt routes ctx.index down to a leaf and applies f there. n must already be
// owned by cow. Children are made mutable before the descent.
func (n *Node) doAt(cow *copyOnWriteContext, ctx *editContext, f leafFunc) (nodeResult, error) {
	switch v := n.NodeVal.(type) {
	case *Leaf:
		return f(cow, ctx, n)
	case *Internal:
		if ctx.index < v.weight {
			v.left = v.left.mutableFor(cow)
			res, err := v.left.doAt(cow, ctx, f)
			if err != nil {
				return editedInPlace, err
			}
			if res.replacement != nil {
				v.left = res.replacement
			}
			v.weight += ctx.delta
			return editedInPlace, nil
		}

		ctx.index -= v.weight
		v.right = v.right.mutableFor(cow)
		res, err := v.right.doAt(cow, ctx, f)
		if err != nil {
			return editedInPlace, err
		}
		if res.replacement != nil {
			v.right = res.replacement
		}
		return editedInPlace, nil
	default:
		panic("Unknown node type")
	}
}

func insert(cow *copyOnWriteContext, ctx *editContext, n *Node) (nodeResult, error) {
	leaf := n.leaf()
	w := leaf.Weight()

	switch {
	case ctx.index > w:
		return editedInPlace, errors.Wrapf(ErrIndexOutOfBounds, "insert at %d into leaf of %d chars", ctx.index, w)
	case ctx.index == w:
		res := appendToLeaf(cow, ctx, n)
		ctx.delta = ctx.chars
		return res, nil
	}

	// Split, then append to the left half which now ends at index.
	right := cow.newLeafNode()
	if err := leaf.splitAtChar(ctx.index, right.leaf()); err != nil {
		cow.freeNode(right)
		return editedInPlace, err
	}
	left := n
	if res := appendToLeaf(cow, ctx, n); res.replacement != nil {
		left = res.replacement
	}
	ctx.delta = ctx.chars
	return replaceWith(cow.newInternal(left, right, ctx.index+ctx.chars)), nil
}

// appendToLeaf adds ctx.text at the end of the leaf held by n. Whatever does not
// fit goes into a new right subtree.
func appendToLeaf(cow *copyOnWriteContext, ctx *editContext, n *Node) nodeResult {
	leaf := n.leaf()
	text := ctx.text

	remaining := leaf.AvailableSpace()
	if remaining >= len(text) {
		leaf.appendString(text)
		return editedInPlace
	}

	// The leaf takes as many whole characters as it has room for, possibly none.
	cut := fitPrefix(text, remaining)
	leaf.appendString(text[:cut])
	right := cow.buildNode(text[cut:])
	return replaceWith(cow.newInternal(n, right, leaf.Weight()))
}

func removeAt(cow *copyOnWriteContext, ctx *editContext, n *Node) (nodeResult, error) {
	leaf := n.leaf()
	w := leaf.Weight()

	switch {
	case w == 0:
		// Nothing to remove.
		return editedInPlace, nil
	case ctx.index > w:
		return editedInPlace, errors.Wrapf(ErrIndexOutOfBounds, "remove at %d from leaf of %d chars", ctx.index, w)
	case ctx.index >= w-1:
		// At the end of the leaf, just move the fill marker back.
		leaf.truncateLastChar()
		ctx.delta = -1
		return editedInPlace, nil
	}

	right := cow.newLeafNode()
	if err := leaf.removeCharAt(ctx.index, right.leaf()); err != nil {
		cow.freeNode(right)
		return editedInPlace, err
	}
	ctx.delta = -1
	return replaceWith(cow.newInternal(n, right, ctx.index)), nil
}
