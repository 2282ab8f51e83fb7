package layout

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/umlsvg/pkg/graph"
)

// pointsPerInch converts between Graphviz inches and diagram points.
const pointsPerInch = 72.0

// nodeName is the DOT identifier of the i-th node. Generated names keep
// the plain output free of quoting.
func nodeName(i int) string { return fmt.Sprintf("n%d", i) }

// ToDOT converts l to Graphviz DOT source. Node and edge styling is left
// out; only geometry matters for placement.
func ToDOT(l graph.Layout, opts Options) string {
	opts = opts.WithDefaults()
	index := l.NodeIndex()

	var buf bytes.Buffer
	if l.Directed {
		buf.WriteString("digraph G {\n")
	} else {
		buf.WriteString("graph G {\n")
	}
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(opts.NodeDistance))
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(opts.LayerDistance))
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	placed := make([]bool, len(l.Nodes))
	if root := l.Root(); root >= 0 {
		for _, c := range l.Clusters[root].Children {
			writeCluster(&buf, l, c, index, placed, 1)
		}
	}
	for i, n := range l.Nodes {
		if !placed[i] {
			writeNode(&buf, i, n, 1)
		}
	}

	buf.WriteString("\n")
	op := "--"
	if l.Directed {
		op = "->"
	}
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %s %s %s;\n", nodeName(index[e.Source]), op, nodeName(index[e.Target]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, l graph.Layout, ci int, index map[string]int, placed []bool, depth int) {
	pad := strings.Repeat("  ", depth)
	c := l.Clusters[ci]
	fmt.Fprintf(buf, "%ssubgraph cluster_%d {\n", pad, ci)
	fmt.Fprintf(buf, "%s  label=\"\";\n", pad)
	for _, id := range c.Nodes {
		i, ok := index[id]
		if !ok || placed[i] {
			continue
		}
		placed[i] = true
		writeNode(buf, i, l.Nodes[i], depth+1)
	}
	for _, child := range c.Children {
		writeCluster(buf, l, child, index, placed, depth+1)
	}
	fmt.Fprintf(buf, "%s}\n", pad)
}

func writeNode(buf *bytes.Buffer, i int, n graph.Node, depth int) {
	fmt.Fprintf(buf, "%s%s [width=%s, height=%s];\n",
		strings.Repeat("  ", depth), nodeName(i), inches(n.Width), inches(n.Height))
}

func inches(pt float64) string {
	return fmt.Sprintf("%.4f", pt/pointsPerInch)
}
