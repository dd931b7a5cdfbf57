package application

// Lines is what the cursor needs to know about the text it moves over.
type Lines interface {
	LineCount() int
	LineLen(row int) int
}

// Cursor is a position in the buffer, counted in characters from 0.
type Cursor struct {
	Row, Col int
}

// Up moves one line up and keeps the column inside that line.
func (c *Cursor) Up(l Lines) {
	if c.Row > 0 {
		c.Row--
	}
	c.Col = min(c.Col, l.LineLen(c.Row))
}

func (c *Cursor) Down(l Lines) {
	if c.Row < l.LineCount()-1 {
		c.Row++
	}
	c.Col = min(c.Col, l.LineLen(c.Row))
}

// Left wraps to the end of the previous line when at column 0.
func (c *Cursor) Left(l Lines) {
	switch {
	case c.Col > 0:
		c.Col--
	case c.Row > 0:
		c.Row--
		c.Col = l.LineLen(c.Row)
	}
}

// Right wraps to the start of the next line when at the end of the line.
func (c *Cursor) Right(l Lines) {
	switch {
	case c.Col < l.LineLen(c.Row):
		c.Col++
	case c.Row < l.LineCount()-1:
		c.Row++
		c.Col = 0
	}
}

func (c *Cursor) Home() {
	c.Col = 0
}

func (c *Cursor) End(l Lines) {
	c.Col = l.LineLen(c.Row)
}

// Clamp moves the cursor back into the text, e.g. after lines were removed.
func (c *Cursor) Clamp(l Lines) {
	c.Row = max(0, min(c.Row, l.LineCount()-1))
	c.Col = max(0, min(c.Col, l.LineLen(c.Row)))
}

// viewport is the first row and column of the buffer shown on screen.
type viewport struct {
	top, left int
}

// scrollTo moves the viewport as little as possible so that c is inside a
// width by height window. line is the text of the cursor row, width counts
// screen cells.
func (v *viewport) scrollTo(c Cursor, line []rune, width, height int) {
	if height > 0 {
		if c.Row < v.top {
			v.top = c.Row
		} else if c.Row >= v.top+height {
			v.top = c.Row - height + 1
		}
	}
	if width > 0 {
		col := min(c.Col, len(line))
		if col < v.left {
			v.left = col
		}
		// the cells left of the cursor plus its own cell must fit
		for v.left < col && textWidth(line[v.left:col]) >= width {
			v.left++
		}
	}
}
