package rope

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafIteratorOrder(t *testing.T) {
	r := MustFrom("ab").Concat(MustFrom("cd"))
	require.NoError(t, r.Insert(1, "x"))

	var got []string
	it := NewLeafIterator(r.root)
	for it.Next() {
		if it.Text() != "" {
			got = append(got, it.Text())
		}
	}
	assert.Equal(t, []string{"ax", "b", "cd"}, got)
	assert.False(t, it.Next())
	assert.Nil(t, it.Bytes())
}

func TestLeavesSnapshot(t *testing.T) {
	r := MustFrom(strings.Repeat(lorem, 100))
	var sb strings.Builder
	for text := range r.Leaves() {
		sb.WriteString(text)
		require.NoError(t, r.Insert(0, "x"))
	}
	assert.Equal(t, strings.Repeat(lorem, 100), sb.String())
}

func TestLeavesStopsEarly(t *testing.T) {
	r := MustFrom(strings.Repeat(lorem, 100))
	n := 0
	for range r.Leaves() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestIO(t *testing.T) {
	r := MustFrom(strings.Repeat("Hello, world! ", 1000))
	r2, err := FromReader(r.Reader())
	require.NoError(t, err)

	if r.String() != r2.String() {
		t.Errorf("Expected %s, got %s", r.String(), r2.String())
	}
}

func TestReaderSmallBuffer(t *testing.T) {
	r := MustFrom("śhello").Concat(MustFrom(" worldś"))
	rd := r.Reader()
	require.NoError(t, r.Append("!"))

	var out bytes.Buffer
	buf := make([]byte, 3)
	for {
		n, err := rd.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, "śhello worldś", out.String())
}

func TestWriteTo(t *testing.T) {
	text := strings.Repeat("zażółć ", 2000)
	r := MustFrom(text)
	var out bytes.Buffer
	n, err := r.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(text)), n)
	assert.Equal(t, text, out.String())
}

func TestTraverser(t *testing.T) {
	r := MustFrom("Hello").Concat(MustFrom(" World"))
	tr := NewTraverser(r)
	assert.False(t, tr.IsLeaf())
	assert.Equal(t, 5, tr.Weight())
	assert.Equal(t, "internal on level 0: weight 5", tr.Current())

	left := tr.Left()
	assert.Equal(t, 1, left.Level())
	leaf := left.Left()
	assert.True(t, leaf.IsLeaf())
	assert.Contains(t, leaf.Current(), `"Hello"`)

	// Leaves have no children, moving down stays put.
	assert.Same(t, leaf, leaf.Left())
	assert.Same(t, leaf, leaf.Right())

	assert.Same(t, left, leaf.Back())
	assert.Same(t, tr, left.Back())
	assert.Same(t, tr, tr.Back())

	assert.Equal(t, 0, tr.Right().Right().Weight())
}

func TestStats(t *testing.T) {
	r := New()
	for i := 0; i < 200; i++ {
		require.NoError(t, r.Append(lorem))
	}
	before := r.Stats()
	assert.Equal(t, 200*len(lorem), before.Chars)
	assert.Equal(t, 200*len(lorem), before.Bytes)
	assert.Equal(t, before.Leaves-1, before.Internals)
	assert.Equal(t, r.Depth(), before.Depth)

	r.Rebalance()
	after := r.Stats()
	assert.Equal(t, before.Bytes, after.Bytes)
	assert.Less(t, after.Depth, before.Depth)
	assert.Less(t, after.StdDevLeafDepth, before.StdDevLeafDepth)
	assert.Greater(t, after.MeanFill, 0.0)
	assert.LessOrEqual(t, after.MeanFill, 1.0)
}

func TestStatsMeanFill(t *testing.T) {
	// one half full leaf next to the empty right leaf From adds
	r := MustFrom(strings.Repeat("a", MaxLeafLen/2))
	st := r.Stats()
	assert.Equal(t, 2, st.Leaves)
	assert.Equal(t, 1, st.Internals)
	assert.InDelta(t, 0.25, st.MeanFill, 1e-9)
	assert.InDelta(t, 1.0, st.MeanLeafDepth, 1e-9)
}
