package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type lines []string

func (l lines) LineCount() int { return len(l) }

func (l lines) LineLen(row int) int { return len([]rune(l[row])) }

func TestCursorMoves(t *testing.T) {
	text := lines{"hello", "ab", "", "żółw"}

	tests := []struct {
		name string
		from Cursor
		move func(c *Cursor)
		want Cursor
	}{
		{"up clamps column", Cursor{1, 2}, func(c *Cursor) { c.Up(text) }, Cursor{0, 2}},
		{"up from long to short", Cursor{3, 4}, func(c *Cursor) { c.Up(text) }, Cursor{2, 0}},
		{"up at top", Cursor{0, 3}, func(c *Cursor) { c.Up(text) }, Cursor{0, 3}},
		{"down clamps column", Cursor{0, 5}, func(c *Cursor) { c.Down(text) }, Cursor{1, 2}},
		{"down at bottom", Cursor{3, 1}, func(c *Cursor) { c.Down(text) }, Cursor{3, 1}},
		{"left", Cursor{0, 3}, func(c *Cursor) { c.Left(text) }, Cursor{0, 2}},
		{"left wraps", Cursor{1, 0}, func(c *Cursor) { c.Left(text) }, Cursor{0, 5}},
		{"left at origin", Cursor{0, 0}, func(c *Cursor) { c.Left(text) }, Cursor{0, 0}},
		{"right", Cursor{3, 1}, func(c *Cursor) { c.Right(text) }, Cursor{3, 2}},
		{"right wraps", Cursor{0, 5}, func(c *Cursor) { c.Right(text) }, Cursor{1, 0}},
		{"right at end", Cursor{3, 4}, func(c *Cursor) { c.Right(text) }, Cursor{3, 4}},
		{"home", Cursor{0, 4}, func(c *Cursor) { c.Home() }, Cursor{0, 0}},
		{"end", Cursor{3, 0}, func(c *Cursor) { c.End(text) }, Cursor{3, 4}},
		{"clamp", Cursor{9, 9}, func(c *Cursor) { c.Clamp(text) }, Cursor{3, 4}},
		{"clamp negative", Cursor{-1, -1}, func(c *Cursor) { c.Clamp(text) }, Cursor{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.from
			tt.move(&c)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestViewportScroll(t *testing.T) {
	line := []rune("abcdefghijklmnop")
	var v viewport
	v.scrollTo(Cursor{5, 0}, line, 10, 4)
	assert.Equal(t, viewport{top: 2}, v)

	v.scrollTo(Cursor{3, 0}, line, 10, 4)
	assert.Equal(t, viewport{top: 2}, v, "cursor already visible")

	v.scrollTo(Cursor{0, 12}, line, 10, 4)
	assert.Equal(t, viewport{top: 0, left: 3}, v)

	v.scrollTo(Cursor{0, 1}, line, 10, 4)
	assert.Equal(t, viewport{top: 0, left: 1}, v)

	v.scrollTo(Cursor{0, 0}, line, 0, 0)
	assert.Equal(t, viewport{top: 0, left: 1}, v, "empty window keeps the viewport")
}

func TestViewportScrollWideRunes(t *testing.T) {
	line := []rune("世界世界世界")
	var v viewport
	v.scrollTo(Cursor{0, 6}, line, 10, 4)
	assert.Equal(t, 2, v.left)
	assert.Less(t, textWidth(line[v.left:6]), 10)

	v.scrollTo(Cursor{0, 3}, line, 10, 4)
	assert.Equal(t, 2, v.left, "cursor already visible")
}

func TestColAt(t *testing.T) {
	runes := []rune("a世b")
	assert.Equal(t, 0, colAt(runes, 0))
	assert.Equal(t, 1, colAt(runes, 1))
	assert.Equal(t, 1, colAt(runes, 2))
	assert.Equal(t, 2, colAt(runes, 3))
	assert.Equal(t, 3, colAt(runes, 10))
	assert.Equal(t, 4, textWidth(runes))
}
