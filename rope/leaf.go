package rope

import (
	"unicode/utf8"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// We assume that one page is 4096 bytes long.
const (
	pageSize = 4096
	wordSize = int(unsafe.Sizeof(uintptr(0)))

	// MaxLeafLen is the byte capacity of a leaf. The buffer, its fill marker and
	// the node header that points at it stay within one page.
	MaxLeafLen = pageSize - 6*wordSize
)

// Leaf is a fixed-capacity chunk of UTF-8 text. Only the first filled bytes are valid.
type Leaf struct {
	val    [MaxLeafLen]byte
	filled int
}

// NewLeaf copies b into a new leaf.
func NewLeaf(b []byte) (*Leaf, error) {
	if len(b) > MaxLeafLen {
		return nil, errors.Wrapf(ErrLeafCapacityExceeded, "%d bytes, max %d", len(b), MaxLeafLen)
	}
	if !utf8.Valid(b) {
		return nil, errors.WithStack(ErrInvalidUTF8)
	}
	l := &Leaf{}
	l.filled = copy(l.val[:], b)
	return l, nil
}

// NewLeafString copies s into a new leaf.
func NewLeafString(s string) (*Leaf, error) {
	if len(s) > MaxLeafLen {
		return nil, errors.Wrapf(ErrLeafCapacityExceeded, "%d bytes, max %d", len(s), MaxLeafLen)
	}
	if !utf8.ValidString(s) {
		return nil, errors.WithStack(ErrInvalidUTF8)
	}
	l := &Leaf{}
	l.appendString(s)
	return l, nil
}

func (*Leaf) isNode() {}

// Weight is the number of characters in the leaf, not its byte length.
func (l *Leaf) Weight() int {
	return utf8.RuneCount(l.Bytes())
}

// AvailableSpace returns how many bytes can still be appended.
func (l *Leaf) AvailableSpace() int {
	return MaxLeafLen - l.filled
}

// Bytes returns the valid prefix. It aliases the leaf buffer.
func (l *Leaf) Bytes() []byte {
	return l.val[:l.filled]
}

func (l *Leaf) String() string {
	return string(l.Bytes())
}

// byteOffsetOfChar maps a character index to a byte offset in the valid prefix.
func (l *Leaf) byteOffsetOfChar(index int) (int, error) {
	b := l.Bytes()
	off := 0
	for i := 0; i < index; i++ {
		if off >= len(b) {
			return 0, errors.Wrapf(ErrIndexOutOfBounds, "char %d in leaf of %d chars", index, i)
		}
		_, size := utf8.DecodeRune(b[off:])
		off += size
	}
	return off, nil
}

// splitAtChar keeps the first index characters in l and moves the rest into right.
func (l *Leaf) splitAtChar(index int, right *Leaf) error {
	off, err := l.byteOffsetOfChar(index)
	if err != nil {
		return err
	}
	right.filled = copy(right.val[:], l.val[off:l.filled])
	l.filled = off
	return nil
}

// removeCharAt drops the character at index. Characters before it stay in l,
// characters after it are moved into right.
func (l *Leaf) removeCharAt(index int, right *Leaf) error {
	start, err := l.byteOffsetOfChar(index)
	if err != nil {
		return err
	}
	if start >= l.filled {
		return errors.Wrapf(ErrIndexOutOfBounds, "remove char %d from leaf of %d chars", index, l.Weight())
	}
	_, size := utf8.DecodeRune(l.val[start:l.filled])
	right.filled = copy(right.val[:], l.val[start+size:l.filled])
	l.filled = start
	return nil
}

func (l *Leaf) truncateLastChar() bool {
	if l.filled == 0 {
		return false
	}
	_, size := utf8.DecodeLastRune(l.Bytes())
	l.filled -= size
	return true
}

// appendString copies s into the free tail. The caller checks AvailableSpace.
func (l *Leaf) appendString(s string) {
	l.filled += copy(l.val[l.filled:], s)
}

func (l *Leaf) copyFrom(o *Leaf) {
	l.filled = copy(l.val[:], o.Bytes())
}

// fitPrefix returns the length of the longest prefix of s that is at most n
// bytes and ends on a character boundary.
func fitPrefix(s string, n int) int {
	if n >= len(s) {
		return len(s)
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}

// byteOffset returns the byte offset of the index-th character of s, or len(s).
func byteOffset(s string, index int) int {
	for off := range s {
		if index == 0 {
			return off
		}
		index--
	}
	return len(s)
}
