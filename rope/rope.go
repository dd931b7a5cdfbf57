// The rope package provides a mutable, copy-on-write Rope.
// Ropes allow large sequences of text to be edited efficiently.
package rope

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// A Rope is a binary tree of text chunks indexed by character (not byte)
// position. Edits happen in place, but Clone is O(1): nodes are shared until
// one of the ropes writes to them.
//
// The root is always an internal node. The tree is not rebalanced
// automatically; call Rebalance after long runs of appends.
//
// The zero value is an empty rope. A Rope must not be mutated from several
// goroutines at once.
type Rope struct {
	root *Node
	len  int
	cow  *copyOnWriteContext
}

// New returns an empty rope.
func New() *Rope {
	return newWithFreeList(nil)
}

// NewWithFreeList returns an empty rope that recycles nodes through f.
func NewWithFreeList(f *FreeList) *Rope {
	return newWithFreeList(f)
}

func newWithFreeList(f *FreeList) *Rope {
	cow := newCopyOnWriteContext(f)
	return &Rope{
		root: cow.newInternal(cow.newLeafNode(), cow.newLeafNode(), 0),
		cow:  cow,
	}
}

// From builds a rope holding text.
func From(text string) (*Rope, error) {
	if !utf8.ValidString(text) {
		return nil, errors.Wrap(ErrInvalidUTF8, "from")
	}
	return fromValid(text, utf8.RuneCountInString(text), nil), nil
}

// MustFrom is like From but panics if text is not valid UTF-8.
func MustFrom(text string) *Rope {
	r, err := From(text)
	if err != nil {
		panic(err)
	}
	return r
}

// FromReader reads rd to the end and builds a rope from its content.
func FromReader(rd io.Reader) (*Rope, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, errors.Wrap(err, "read rope")
	}
	return From(string(b))
}

func fromValid(text string, chars int, f *FreeList) *Rope {
	cow := newCopyOnWriteContext(f)
	return &Rope{
		root: cow.rootFor(cow.buildNode(text)),
		len:  chars,
		cow:  cow,
	}
}

func (r *Rope) lazyInit() {
	if r.root == nil {
		*r = *New()
	}
}

// Len returns the number of characters in the rope.
func (r *Rope) Len() int {
	return r.len
}

// String returns the content of the rope.
func (r *Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	it := NewLeafIterator(r.root)
	for it.Next() {
		sb.Write(it.Bytes())
	}
	return sb.String()
}

// Append adds text at the end of the rope.
func (r *Rope) Append(text string) error {
	return r.Insert(r.len, text)
}

// Insert adds text before the character at index. index may equal Len().
func (r *Rope) Insert(index int, text string) error {
	r.lazyInit()
	if index < 0 || index > r.len {
		return outOfBounds("insert", index, r.len)
	}
	if !utf8.ValidString(text) {
		return errors.Wrapf(ErrInvalidUTF8, "insert at %d", index)
	}
	if text == "" {
		return nil
	}

	ctx := &editContext{index: index, text: text, chars: utf8.RuneCountInString(text)}
	if err := r.edit(ctx, insert); err != nil {
		return errors.Wrapf(err, "insert at %d", index)
	}
	r.len += ctx.delta
	return nil
}

// RemoveAt removes one character. On an empty rope it does nothing.
//
// When index equals Len() the last character of the rightmost leaf goes, so
// RemoveAt(Len()) behaves like RemoveAt(Len()-1) as long as that leaf is not
// empty.
func (r *Rope) RemoveAt(index int) error {
	r.lazyInit()
	if r.len == 0 {
		return nil
	}
	if index < 0 || index > r.len {
		return outOfBounds("remove", index, r.len)
	}

	ctx := &editContext{index: index}
	if err := r.edit(ctx, removeAt); err != nil {
		return errors.Wrapf(err, "remove at %d", index)
	}
	r.len += ctx.delta
	return nil
}

func (r *Rope) edit(ctx *editContext, f leafFunc) error {
	root := r.root.mutableFor(r.cow)
	if _, ok := root.NodeVal.(*Internal); !ok {
		return invalidRoot(root)
	}
	r.root = root
	_, err := root.doAt(r.cow, ctx, f)
	return err
}

// Concat returns a rope holding r followed by other. No text is copied, the
// new root points at both old roots. r and other stay valid; the shared
// nodes are copied as soon as any of the three ropes writes to them.
func (r *Rope) Concat(other *Rope) *Rope {
	r.lazyInit()
	other.lazyInit()

	cow := r.cow.fork()
	out := &Rope{
		root: cow.newInternal(r.root, other.root, r.len),
		len:  r.len + other.len,
		cow:  cow,
	}
	r.cow = r.cow.fork()
	other.cow = other.cow.fork()
	return out
}

// SplitAt returns the characters before index and the ones from index on as
// two new ropes. Apart from index 0, both halves are rebuilt from the
// flattened text, so this is O(n).
func (r *Rope) SplitAt(index int) (*Rope, *Rope, error) {
	r.lazyInit()
	if index < 0 || index > r.len {
		return nil, nil, outOfBounds("split", index, r.len)
	}
	if index == 0 {
		return NewWithFreeList(r.cow.freelist), r.Clone(), nil
	}

	value := r.String()
	off := byteOffset(value, index)
	left := fromValid(value[:off], index, r.cow.freelist)
	right := fromValid(value[off:], r.len-index, r.cow.freelist)
	return left, right, nil
}

// Rebalance rebuilds the tree from the flattened text. It is O(n).
func (r *Rope) Rebalance() {
	r.lazyInit()
	value := r.String()
	old := r.root
	r.root = r.cow.rootFor(r.cow.buildNode(value))
	r.cow.freeTree(old)
}

// Clone returns a copy of the rope in O(1). The two ropes share their nodes
// until one of them writes.
func (r *Rope) Clone() *Rope {
	r.lazyInit()
	cow1, cow2 := *r.cow, *r.cow
	out := *r
	r.cow = &cow1
	out.cow = &cow2
	return &out
}

// Depth returns the number of edges on the longest path from the root to a leaf.
func (r *Rope) Depth() int {
	if r.root == nil {
		return 0
	}
	return r.root.height()
}
