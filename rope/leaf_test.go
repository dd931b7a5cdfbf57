package rope

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxLeafLenFitsPage(t *testing.T) {
	assert.LessOrEqual(t, MaxLeafLen+6*wordSize, pageSize)
}

func TestNewLeafCapacity(t *testing.T) {
	_, err := NewLeafString(strings.Repeat("a", MaxLeafLen+1))
	assert.True(t, errors.Is(err, ErrLeafCapacityExceeded))

	_, err = NewLeaf(make([]byte, MaxLeafLen+1))
	assert.True(t, errors.Is(err, ErrLeafCapacityExceeded))

	l, err := NewLeafString(strings.Repeat("a", MaxLeafLen))
	require.NoError(t, err)
	assert.Equal(t, 0, l.AvailableSpace())
}

func TestNewLeafRejectsInvalidUTF8(t *testing.T) {
	_, err := NewLeaf([]byte{'a', 0xc5})
	assert.True(t, errors.Is(err, ErrInvalidUTF8))
}

func TestLeafWeightCountsCharacters(t *testing.T) {
	l, err := NewLeafString("zażółć")
	require.NoError(t, err)
	assert.Equal(t, 6, l.Weight())
	assert.Equal(t, MaxLeafLen-len("zażółć"), l.AvailableSpace())
}

func TestByteOffsetOfChar(t *testing.T) {
	l, err := NewLeafString("aśb")
	require.NoError(t, err)

	tests := []struct {
		index, want int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 4},
	}
	for _, tt := range tests {
		off, err := l.byteOffsetOfChar(tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.want, off, "char %d", tt.index)
	}

	_, err = l.byteOffsetOfChar(4)
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds))
}

func TestLeafSplitAtChar(t *testing.T) {
	l, err := NewLeafString("Hśello")
	require.NoError(t, err)
	right := &Leaf{}
	require.NoError(t, l.splitAtChar(2, right))
	assert.Equal(t, "Hś", l.String())
	assert.Equal(t, "ello", right.String())
}

func TestLeafRemoveCharAt(t *testing.T) {
	l, err := NewLeafString("Hśello")
	require.NoError(t, err)
	right := &Leaf{}
	require.NoError(t, l.removeCharAt(1, right))
	assert.Equal(t, "H", l.String())
	assert.Equal(t, "ello", right.String())

	err = l.removeCharAt(1, right)
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds))
}

func TestLeafTruncateLastChar(t *testing.T) {
	l, err := NewLeafString("ab😀")
	require.NoError(t, err)
	assert.True(t, l.truncateLastChar())
	assert.Equal(t, "ab", l.String())

	empty := &Leaf{}
	assert.False(t, empty.truncateLastChar())
}

func TestFitPrefix(t *testing.T) {
	assert.Equal(t, 3, fitPrefix("abc", 10))
	assert.Equal(t, 1, fitPrefix("aść", 2))
	assert.Equal(t, 3, fitPrefix("aść", 3))
	assert.Equal(t, 0, fitPrefix("ść", 1))
	assert.Equal(t, 0, fitPrefix("abc", 0))
}
