// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dalzilio-labs/qmddsift/internal/cnum"
)

// Stats returns a human-readable summary of the node arena and garbage
// collection history, in the teacher's report-card style.
func (t *Table) Stats() string {
	res := fmt.Sprintf("Qubits:     %d\n", t.nqubits)
	res += fmt.Sprintf("Allocated:  %d\n", len(t.nodes))
	res += fmt.Sprintf("Produced:   %d\n", t.produced)
	r := (float64(t.freenum) / float64(len(t.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", t.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", t.Size(), 100.0-r)
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", len(t.history))
	res += fmt.Sprintf("GC limit:   %d\n", t.gcLimit)
	if Debug {
		res += "==============\n"
		res += fmt.Sprintf("Unique Access:  %d\n", t.uniqueAccess)
		res += fmt.Sprintf("Unique Chain:   %d\n", t.uniqueChain)
		res += fmt.Sprintf("Unique Hit:     %d\n", t.uniqueHit)
		res += fmt.Sprintf("Unique Miss:    %d\n", t.uniqueMiss)
	}
	return res
}

// ExportDot writes a Graphviz DOT description of the diagram rooted at root
// (with the given root weight) to filename, or to stdout if filename is "-".
func (d *Diagram) ExportDot(filename string, root int32, rootWeight cnum.Handle) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)
	defer w.Flush()
	return d.WriteDot(w, root, rootWeight)
}

// WriteDot writes a Graphviz DOT description of the diagram rooted at root
// (with the given root weight) to w, for callers that already hold an
// io.Writer (e.g. an HTTP response body) instead of a filename.
func (d *Diagram) WriteDot(w io.Writer, root int32, rootWeight cnum.Handle) error {
	return d.writeDot(w, root, rootWeight)
}

func (d *Diagram) writeDot(w io.Writer, root int32, rootWeight cnum.Handle) error {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, `root [shape=point, label=""];`)
	fmt.Fprintf(w, "term [shape=box, label=\"1\", style=filled, height=0.3, width=0.3];\n")
	fmt.Fprintf(w, "root -> n%d [label=\"%s\"];\n", root, d.weights.String(rootWeight))
	visited := make(map[int32]bool)
	var visit func(n int32)
	visit = func(n int32) {
		if n == d.table.Terminal() || visited[n] {
			return
		}
		visited[n] = true
		level := d.table.Level(n)
		fmt.Fprintf(w, "n%d %s\n", n, dotlabel(n, level))
		for i, e := range d.table.Edges(n) {
			target := "term"
			if e.target != d.table.Terminal() {
				target = fmt.Sprintf("n%d", e.target)
			}
			fmt.Fprintf(w, "n%d -> %s [label=\"e%d: %s\"];\n", n, target, i, d.weights.String(e.weight))
			if e.target != d.table.Terminal() {
				visit(e.target)
			}
		}
	}
	visit(root)
	fmt.Fprintln(w, "}")
	return nil
}

func dotlabel(id int32, level int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[q%d]</FONT>
>];`, id, level)
}
