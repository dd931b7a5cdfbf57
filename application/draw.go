package application

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	DefaultStyle = tcell.StyleDefault
	LightStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StatusStyle  = tcell.StyleDefault.Reverse(true)
)

// cellWidth is the number of screen cells r takes. Runes without a width of
// their own, like tabs, are drawn as a single blank.
func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func textWidth(runes []rune) (w int) {
	for _, r := range runes {
		w += cellWidth(r)
	}
	return
}

// drawText puts text on row y from x1 up to x2 (exclusive) and returns the
// first column after it.
func drawText(s tcell.Screen, x1, y, x2 int, style tcell.Style, text string) int {
	x := x1
	for _, r := range text {
		w := cellWidth(r)
		if x+w > x2 {
			break
		}
		if runewidth.RuneWidth(r) == 0 {
			r = ' '
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func fillRow(s tcell.Screen, x1, y, x2 int, style tcell.Style) {
	for x := x1; x < x2; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// colAt returns the index into runes of the character drawn dx cells right
// of runes[0]. Past the end it returns len(runes).
func colAt(runes []rune, dx int) int {
	x := 0
	for i, r := range runes {
		x += cellWidth(r)
		if x > dx {
			return i
		}
	}
	return len(runes)
}
