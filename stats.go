package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"goditor/rope"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var ErrBadPath = errors.New("path may only contain l, r and b")

func newStatsCmd() *cobra.Command {
	var rebalance bool
	var path string

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Print the shape of the rope holding a file",
		Long: "Builds a rope by appending the file line by line, the way typing grows it,\n" +
			"and prints its shape. --path walks the tree: l goes left, r right, b back.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout(), args[0], rebalance, path)
		},
	}
	cmd.Flags().BoolVar(&rebalance, "rebalance", false, "rebalance the rope before printing")
	cmd.Flags().StringVar(&path, "path", "", "moves to walk from the root, e.g. lrl")
	return cmd
}

func runStats(w io.Writer, file string, rebalance bool, path string) error {
	f, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	defer f.Close()

	r, err := appendLines(f)
	if err != nil {
		return errors.Wrapf(err, "%s", file)
	}
	if rebalance {
		r.Rebalance()
	}

	st := r.Stats()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(file)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"characters", humanize.Comma(int64(st.Chars))},
		{"bytes", humanize.Bytes(uint64(st.Bytes))},
		{"leaves", humanize.Comma(int64(st.Leaves))},
		{"internal nodes", humanize.Comma(int64(st.Internals))},
		{"depth", st.Depth},
		{"mean leaf depth", fmt.Sprintf("%.2f", st.MeanLeafDepth)},
		{"std-dev leaf depth", fmt.Sprintf("%.2f", st.StdDevLeafDepth)},
		{"mean leaf fill", fmt.Sprintf("%.1f%%", st.MeanFill*100)},
	})
	t.Render()

	if path == "" {
		return nil
	}
	tr := rope.NewTraverser(r)
	printNode(w, "", tr)
	for _, move := range path {
		switch move {
		case 'l':
			tr = tr.Left()
		case 'r':
			tr = tr.Right()
		case 'b':
			tr = tr.Back()
		default:
			return errors.Wrapf(ErrBadPath, "got %q", move)
		}
		printNode(w, string(move)+" ", tr)
	}
	return nil
}

var (
	leafColor     = color.New(color.FgGreen)
	internalColor = color.New(color.FgCyan)
)

// printNode colors leaves and internal nodes apart when stdout is a terminal.
func printNode(w io.Writer, prefix string, tr *rope.Traverser) {
	c := internalColor
	if tr.IsLeaf() {
		c = leafColor
	}
	c.Fprintf(w, "%s%s\n", prefix, tr.Current())
}

func appendLines(rd io.Reader) (*rope.Rope, error) {
	r := rope.New()
	br := bufio.NewReader(rd)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if aerr := r.Append(line); aerr != nil {
				return nil, aerr
			}
		}
		if err == io.EOF {
			return r, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read")
		}
	}
}
