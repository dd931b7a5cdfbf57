package layout

import (
	"slices"
)

type Point struct {
	X, Y int
}

type Flex struct {
	Dir   Direction // direction of the main axis
	Items []FlexItem
}

func Column(items ...FlexItem) *Flex {
	return &Flex{Dir: Y, Items: items}
}

func Row(items ...FlexItem) *Flex {
	return &Flex{Dir: X, Items: items}
}

func (f Flex) StartLayouting(width, height int) {
	f.Layout(Dimensions{Origin: Point{X: 0, Y: 0}, Width: width, Height: height})
}

// Layout splits dim along the main axis and hands every item its box.
// Items whose minimum size cannot be met are skipped. The rest share the
// space evenly, each capped at its maximum. Nested flexes are laid out after
// all boxes of this level have been called.
func (f Flex) Layout(dim Dimensions) {
	if len(f.Items) == 0 {
		return
	}
	space := dim.mainSize(f.Dir)

	// only render items whose min size is actually met
	smallestPossibleSize := space / len(f.Items)
	itemsToLayout := filter(f.Items, func(_ int, item FlexItem) bool {
		return item.Size.Min.toAbs(space) <= smallestPossibleSize
	})
	if len(itemsToLayout) == 0 {
		return
	}

	order := make([]int, len(itemsToLayout))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return itemsToLayout[a].Size.Max.toAbs(space) - itemsToLayout[b].Size.Max.toAbs(space)
	})

	filledSpace := make([]int, len(itemsToLayout))
	remainingSpace := space
	given := 0
	for tos, idx := range order {
		rest := order[tos:]
		fill := itemsToLayout[idx].Size.Max.toAbs(space) - given
		// if we can give every remaining item this much, do so
		if fill*len(rest) <= remainingSpace {
			for _, j := range rest {
				filledSpace[j] += fill
			}
			remainingSpace -= fill * len(rest)
			given += fill
			continue
		}
		fill = remainingSpace / len(rest)
		for _, j := range rest {
			filledSpace[j] += fill
		}
		break
	}

	// items must be layouted in the order they appear in the list, so that the origin is correct
	dims := make([]Dimensions, len(itemsToLayout))
	orig := dim.Origin
	for i, item := range itemsToLayout {
		d := Dimensions{Origin: orig, Width: dim.Width, Height: dim.Height}
		if f.Dir == Y {
			d.Height = filledSpace[i]
			orig = Point{orig.X, orig.Y + d.Height}
		} else {
			d.Width = filledSpace[i]
			orig = Point{orig.X + d.Width, orig.Y}
		}
		dims[i] = d
		if item.Box != nil {
			item.Box(d)
		}
	}

	// recursiveley layout flex items
	for i, item := range itemsToLayout {
		if item.Flex != nil {
			item.Flex.Layout(dims[i])
		}
	}
}

func filter[T any](ss []T, test func(i int, t T) bool) (ret []T) {
	for i, s := range ss {
		if test(i, s) {
			ret = append(ret, s)
		}
	}
	return
}

type FlexItem struct {
	Box  LayoutBox
	Flex *Flex
	Size Constraint
}

func FlexItemBox(box LayoutBox, size Constraint, flex *Flex) FlexItem {
	return FlexItem{Box: box, Size: size, Flex: flex}
}

type Constraint struct {
	Min, Max Size
}

func Exact(size Size) Constraint {
	return Constraint{Min: size, Max: size}
}

func Max(size Size) Constraint {
	return Constraint{Min: Abs(0), Max: size}
}

type Size struct {
	abs int     // absolute size
	rel float64 // [0, 1]
}

func Abs(abs int) Size {
	return Size{abs: abs}
}

func Rel(rel float64) Size {
	return Size{rel: rel}
}

func (s Size) toAbs(size int) int {
	if s.abs != 0 {
		return s.abs
	}

	return int(s.rel * float64(size))
}

type Direction int

const (
	Y Direction = iota
	X
)

// Resolve dimensions for a box
type Dimensions struct {
	Origin        Point // TL corner
	Width, Height int
}

func (d Dimensions) mainSize(dir Direction) int {
	if dir == Y {
		return d.Height
	}
	return d.Width
}

// Contains reports whether the cell x, y lies inside d.
func (d Dimensions) Contains(x, y int) bool {
	return x >= d.Origin.X && x < d.Origin.X+d.Width &&
		y >= d.Origin.Y && y < d.Origin.Y+d.Height
}

type LayoutBox func(Dimensions)

func EmptyBox(Dimensions) {}
