package buffer

import (
	"bytes"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"goditor/files"
	"goditor/rope"

	"github.com/cockroachdb/errors"
)

// ErrNoPath is returned by Save when the buffer was never given a file.
var ErrNoPath = errors.New("buffer has no file path")

type Options struct {
	// TrimFiles strips trailing whitespace from every line on save.
	TrimFiles bool
	// RebalanceDepth rebuilds a line once its rope gets deeper than this. 0 disables it.
	RebalanceDepth int
}

// Buffer is the text of one file, one rope per line.
type Buffer struct {
	lines []*rope.Rope
	path  string
	dirty bool
	opts  Options

	log *log.Logger
}

func NewBuffer(log *log.Logger) *Buffer {
	return &Buffer{
		lines: []*rope.Rope{rope.New()},
		log:   orDiscard(log),
	}
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}
	return l
}

func (b *Buffer) SetOptions(opts Options) {
	b.opts = opts
}

// OpenFile replaces the content of the buffer with the file at path.
func (b *Buffer) OpenFile(path string) error {
	content, err := files.Read(path)
	if err != nil {
		return err
	}

	lines := make([]*rope.Rope, 0, len(content))
	for i, text := range content {
		line, err := rope.From(text)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", path, i+1)
		}
		lines = append(lines, line)
	}

	b.lines = lines
	b.path = path
	b.dirty = false
	b.log.Printf("Opened %v with %d lines", path, len(lines))
	return nil
}

func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	return b.SaveAs(b.path)
}

func (b *Buffer) SaveAs(path string) error {
	var content bytes.Buffer
	if _, err := b.writeTo(&content, b.opts.TrimFiles); err != nil {
		return err
	}
	if err := files.Write(path, &content); err != nil {
		return err
	}
	b.path = path
	b.dirty = false
	b.log.Printf("Wrote %d lines to %v", len(b.lines), path)
	return nil
}

// WriteTo writes every line followed by a newline.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.writeTo(w, false)
}

func (b *Buffer) writeTo(w io.Writer, trim bool) (n int64, err error) {
	for _, line := range b.lines {
		var m int
		if trim {
			m, err = io.WriteString(w, strings.TrimRight(line.String(), " \t"))
			n += int64(m)
		} else {
			var k int64
			k, err = line.WriteTo(w)
			n += k
		}
		if err != nil {
			return n, err
		}
		m, err = io.WriteString(w, "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (b *Buffer) String() string {
	var sb strings.Builder
	b.writeTo(&sb, false)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b *Buffer) Path() string {
	return b.path
}

// SetPath sets the file Save writes to without reading it.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

func (b *Buffer) Dirty() bool {
	return b.dirty
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of row, or "" if there is no such row.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row].String()
}

// LineLen returns the number of characters in row.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return b.lines[row].Len()
}

func (b *Buffer) line(row int) (*rope.Rope, error) {
	if row < 0 || row >= len(b.lines) {
		return nil, errors.Wrapf(rope.ErrIndexOutOfBounds, "row %d of %d", row, len(b.lines))
	}
	return b.lines[row], nil
}

// Insert adds text at row and col. Newlines in text start new lines. It
// returns the position right after the inserted text.
func (b *Buffer) Insert(row, col int, text string) (int, int, error) {
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		if i > 0 {
			if err := b.NewLine(row, col); err != nil {
				return row, col, err
			}
			row, col = row+1, 0
		}
		if part == "" {
			continue
		}

		line, err := b.line(row)
		if err != nil {
			return row, col, err
		}
		if err := line.Insert(col, part); err != nil {
			return row, col, errors.Wrapf(err, "row %d", row)
		}
		col += utf8.RuneCountInString(part)
		b.dirty = true
		b.maybeRebalance(row, line)
	}
	return row, col, nil
}

func (b *Buffer) maybeRebalance(row int, line *rope.Rope) {
	if b.opts.RebalanceDepth <= 0 || line.Depth() <= b.opts.RebalanceDepth {
		return
	}
	depth := line.Depth()
	line.Rebalance()
	b.log.Printf("Rebalanced line %d, depth %d -> %d", row, depth, line.Depth())
}

// Backspace removes the character before col. At the start of a line the
// line is joined onto the previous one. It returns the new cursor position.
func (b *Buffer) Backspace(row, col int) (int, int, error) {
	line, err := b.line(row)
	if err != nil {
		return row, col, err
	}

	if col > 0 {
		if err := line.RemoveAt(col - 1); err != nil {
			return row, col, errors.Wrapf(err, "row %d", row)
		}
		b.dirty = true
		return row, col - 1, nil
	}
	if row == 0 {
		return row, col, nil
	}

	prev := b.lines[row-1]
	joined := prev.Concat(line)
	b.lines[row-1] = joined
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.dirty = true
	b.maybeRebalance(row-1, joined)
	return row - 1, prev.Len(), nil
}

// NewLine splits row at col, the text from col on moves to a new line below.
func (b *Buffer) NewLine(row, col int) error {
	line, err := b.line(row)
	if err != nil {
		return err
	}
	left, right, err := line.SplitAt(col)
	if err != nil {
		return errors.Wrapf(err, "row %d", row)
	}

	b.lines[row] = left
	b.lines = append(b.lines[:row+1], append([]*rope.Rope{right}, b.lines[row+1:]...)...)
	b.dirty = true
	return nil
}

// Rebalance rebuilds every line.
func (b *Buffer) Rebalance() {
	for _, line := range b.lines {
		line.Rebalance()
	}
	b.log.Printf("Rebalanced %d lines", len(b.lines))
}

// Stats sums up the shape of all lines.
func (b *Buffer) Stats() rope.Stats {
	var st rope.Stats
	for _, line := range b.lines {
		ls := line.Stats()
		st.Chars += ls.Chars
		st.Bytes += ls.Bytes
		st.Leaves += ls.Leaves
		st.Internals += ls.Internals
		st.Depth = max(st.Depth, ls.Depth)
	}
	return st
}
