package rope

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrIndexOutOfBounds is returned when a character index is past the end of the rope.
	ErrIndexOutOfBounds = errors.New("rope: index out of bounds")
	// ErrLeafCapacityExceeded is returned when a leaf is built from more than MaxLeafLen bytes.
	ErrLeafCapacityExceeded = errors.New("rope: leaf capacity exceeded")
	// ErrInvalidRootShape marks an internal consistency failure: the root must be an internal node.
	ErrInvalidRootShape = errors.New("rope: invalid root shape")
	// ErrInvalidUTF8 is returned when text handed to the rope is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("rope: invalid utf-8")
)

func outOfBounds(op string, index, length int) error {
	return errors.Wrapf(ErrIndexOutOfBounds, "%s at %d (len %d)", op, index, length)
}

func invalidRoot(n *Node) error {
	return errors.Mark(errors.AssertionFailedf("rope root is %T, want *Internal", n.NodeVal), ErrInvalidRootShape)
}
