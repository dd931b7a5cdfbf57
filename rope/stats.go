package rope

import (
	"gonum.org/v1/gonum/stat"
)

// Stats describes the shape of a rope.
type Stats struct {
	Chars     int
	Bytes     int
	Leaves    int
	Internals int
	Depth     int

	MeanLeafDepth   float64
	StdDevLeafDepth float64
	// MeanFill is the average share of leaf capacity in use, in [0, 1].
	MeanFill float64
}

func (r *Rope) Stats() Stats {
	st := Stats{Chars: r.len}
	if r.root == nil {
		return st
	}

	var depths, fills []float64
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		switch v := n.NodeVal.(type) {
		case *Leaf:
			st.Leaves++
			st.Bytes += v.filled
			depths = append(depths, float64(depth))
			fills = append(fills, float64(v.filled)/float64(MaxLeafLen))
		case *Internal:
			st.Internals++
			walk(v.left, depth+1)
			walk(v.right, depth+1)
		}
		st.Depth = max(st.Depth, depth)
	}
	walk(r.root, 0)

	if len(depths) > 1 {
		st.MeanLeafDepth, st.StdDevLeafDepth = stat.MeanStdDev(depths, nil)
	} else if len(depths) == 1 {
		st.MeanLeafDepth = depths[0]
	}
	st.MeanFill = stat.Mean(fills, nil)
	return st
}
