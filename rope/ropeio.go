package rope

import (
	"io"
)

// A RopeReader provides an implementation of io.Reader for ropes. It reads
// from a snapshot taken when it was created.
type RopeReader struct {
	it      *LeafIterator
	pending []byte
}

// Reader returns an io.Reader over the current content of the rope.
func (r *Rope) Reader() *RopeReader {
	snap := r.Clone()
	return &RopeReader{it: NewLeafIterator(snap.root)}
}

// Read implements the standard Read interface:
// it reads data from the rope, populating p, and returns
// the number of bytes actually read.
func (reader *RopeReader) Read(p []byte) (n int, err error) {
	for len(reader.pending) == 0 {
		if !reader.it.Next() {
			return 0, io.EOF
		}
		reader.pending = reader.it.Bytes()
	}
	n = copy(p, reader.pending)
	reader.pending = reader.pending[n:]
	return n, nil
}

// WriteTo implements io.WriterTo, writing the rope leaf by leaf.
func (r *Rope) WriteTo(w io.Writer) (n int64, err error) {
	if r.root == nil {
		return 0, nil
	}
	it := NewLeafIterator(r.root)
	for it.Next() {
		b := it.Bytes()
		if len(b) == 0 {
			continue
		}
		m, err := w.Write(b)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
