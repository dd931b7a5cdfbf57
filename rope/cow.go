package rope

// cow.go implements copy-on-write semantics for the rope.

import (
	"sync"
)

const (
	DefaultFreeListSize = 32
)

var defaultFreeList = NewFreeList(DefaultFreeListSize)

// FreeList represents a free list of rope nodes. Leaves keep their page sized
// buffer while they sit in the list, so recycling a leaf saves the allocation.
// By default every rope shares one FreeList, access to it is guarded by a mutex.
type FreeList struct {
	mu       sync.Mutex
	freelist []*Node
}

// NewFreeList creates a new free list.
// size is the maximum size of the returned free list.
func NewFreeList(size int) *FreeList {
	return &FreeList{freelist: make([]*Node, 0, size)}
}

func (f *FreeList) newNode() (n *Node) {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return new(Node)
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	return
}

// freeNode adds the given node to the list, returning true if it was added
// and false if it was discarded.
func (f *FreeList) freeNode(n *Node) (out bool) {
	f.mu.Lock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	f.mu.Unlock()
	return
}

// Len reports how many nodes are waiting to be reused.
func (f *FreeList) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.freelist)
}

// copyOnWriteContext pointers determine node ownership. A rope with a write
// context equal to a node's write context is allowed to modify that node.
// A rope whose write context does not match a node's is not allowed to modify
// it, and must create a new, writable copy.
//
// Every operation that makes two ropes share nodes (Clone, Concat) hands fresh
// contexts to all ropes involved, so afterwards nobody owns the shared nodes.
//
// When doing any write operation, we maintain the invariant that the current
// node's context is equal to the context of the rope that requested the write.
// We do this by, before we descend into any node, creating a copy with the
// correct context if the contexts don't match.
type copyOnWriteContext struct {
	freelist *FreeList
}

func newCopyOnWriteContext(f *FreeList) *copyOnWriteContext {
	if f == nil {
		f = defaultFreeList
	}
	return &copyOnWriteContext{freelist: f}
}

// fork returns a new context sharing the free list.
func (c *copyOnWriteContext) fork() *copyOnWriteContext {
	out := *c
	return &out
}

func (c *copyOnWriteContext) newNode() (n *Node) {
	n = c.freelist.newNode()
	n.cow = c
	return
}

func (c *copyOnWriteContext) newLeafNode() *Node {
	n := c.newNode()
	if l, ok := n.NodeVal.(*Leaf); ok {
		l.filled = 0
	} else {
		n.NodeVal = new(Leaf)
	}
	return n
}

func (c *copyOnWriteContext) newInternal(left, right *Node, weight int) *Node {
	n := c.newNode()
	in, ok := n.NodeVal.(*Internal)
	if !ok {
		in = new(Internal)
		n.NodeVal = in
	}
	in.weight, in.left, in.right = weight, left, right
	return n
}

func (n *Node) mutableFor(cow *copyOnWriteContext) *Node {
	if n.cow == cow {
		return n
	}

	switch v := n.NodeVal.(type) {
	case *Leaf:
		out := cow.newLeafNode()
		out.NodeVal.(*Leaf).copyFrom(v)
		return out
	case *Internal:
		return cow.newInternal(v.left, v.right, v.weight)
	default:
		panic("Unknown NodeVal type")
	}
}

type freeType int

const (
	ftFreelistFull freeType = iota // node was freed (available for GC, not stored in freelist)
	ftStored                       // node was stored in the freelist for later use
	ftNotOwned                     // node was ignored by COW, since it's owned by another one
)

// freeNode frees a node within a given COW context, if it's owned by that
// context.  It returns what happened to the node (see freeType const
// documentation).
func (c *copyOnWriteContext) freeNode(n *Node) freeType {
	if n.cow != c {
		return ftNotOwned
	}
	// clear to allow GC
	switch v := n.NodeVal.(type) {
	case *Internal:
		v.left, v.right, v.weight = nil, nil, 0
	case *Leaf:
		v.filled = 0
	default:
		panic("Unknown NodeVal type")
	}

	n.cow = nil
	if c.freelist.freeNode(n) {
		return ftStored
	}
	return ftFreelistFull
}

// freeTree releases every node of the subtree that this context owns. Owned
// nodes are referenced exactly once, so their owned children can go as well.
func (c *copyOnWriteContext) freeTree(n *Node) {
	if n == nil || n.cow != c {
		return
	}
	if in, ok := n.NodeVal.(*Internal); ok {
		left, right := in.left, in.right
		c.freeTree(left)
		c.freeTree(right)
	}
	c.freeNode(n)
}
