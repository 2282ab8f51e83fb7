package layout

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/umlsvg/pkg/geom"
	"github.com/matzehuels/umlsvg/pkg/graph"
)

var engines = map[string]graphviz.Layout{
	"dot":   graphviz.DOT,
	"neato": graphviz.NEATO,
	"fdp":   graphviz.FDP,
	"circo": graphviz.CIRCO,
	"twopi": graphviz.TWOPI,
}

// Compute returns a copy of l with node positions, edge bends and cluster
// rectangles filled in. Sizes, styles and labels are kept. Existing bends
// are replaced.
func Compute(ctx context.Context, l graph.Layout, opts Options) (graph.Layout, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return graph.Layout{}, err
	}
	if err := l.Validate(); err != nil {
		return graph.Layout{}, fmt.Errorf("invalid input: %w", err)
	}
	if len(l.Nodes) == 0 {
		return clone(l), nil
	}

	plain, err := runGraphviz(ctx, ToDOT(l, opts), opts.Engine)
	if err != nil {
		return graph.Layout{}, err
	}
	pg, err := parsePlain(plain)
	if err != nil {
		return graph.Layout{}, err
	}
	return apply(l, pg, opts)
}

func runGraphviz(ctx context.Context, dot, engine string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engines[engine])

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format("plain"), &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return buf.Bytes(), nil
}

// apply copies plain coordinates onto a clone of l.
func apply(l graph.Layout, pg plainGraph, opts Options) (graph.Layout, error) {
	out := clone(l)
	toPoints := func(p geom.Point) geom.Point {
		return geom.Pt(p.X*pointsPerInch, (pg.Height-p.Y)*pointsPerInch)
	}

	for i := range out.Nodes {
		p, ok := pg.Nodes[nodeName(i)]
		if !ok {
			return graph.Layout{}, fmt.Errorf("graphviz dropped node %q", out.Nodes[i].ID)
		}
		c := toPoints(p)
		out.Nodes[i].X, out.Nodes[i].Y = c.X, c.Y
	}

	// Plain output lists edges grouped by tail; parallel edges between the
	// same pair keep their relative order.
	routes := make(map[[2]string][][]geom.Point)
	for _, e := range pg.Edges {
		k := [2]string{e.Tail, e.Head}
		routes[k] = append(routes[k], e.Points)
	}
	index := out.NodeIndex()
	for i := range out.Edges {
		e := &out.Edges[i]
		k := [2]string{nodeName(index[e.Source]), nodeName(index[e.Target])}
		if !out.Directed && len(routes[k]) == 0 {
			k = [2]string{k[1], k[0]}
		}
		queue := routes[k]
		e.Bends = nil
		if len(queue) == 0 {
			continue
		}
		routes[k] = queue[1:]
		knots := splineKnots(queue[0])
		if k[0] != nodeName(index[e.Source]) {
			slices.Reverse(knots)
		}
		for _, p := range knots {
			e.Bends = append(e.Bends, toPoints(p))
		}
	}

	fitClusters(&out, opts.ClusterMargin)
	return out, nil
}

// splineKnots returns the interior junctions of a piecewise cubic B-spline
// given as 3k+1 control points.
func splineKnots(pts []geom.Point) []geom.Point {
	var out []geom.Point
	for i := 3; i < len(pts)-1; i += 3 {
		out = append(out, pts[i])
	}
	return out
}

// fitClusters sizes every non-root cluster to its members grown by margin,
// children before parents.
func fitClusters(l *graph.Layout, margin float64) {
	root := l.Root()
	if root < 0 {
		return
	}
	index := l.NodeIndex()
	var fit func(ci int) geom.Rect
	fit = func(ci int) geom.Rect {
		c := &l.Clusters[ci]
		box := geom.EmptyRect()
		for _, id := range c.Nodes {
			if i, ok := index[id]; ok {
				box = box.Union(l.Nodes[i].Box())
			}
		}
		for _, child := range c.Children {
			box = box.Union(fit(child))
		}
		if ci == root || box.IsEmpty() {
			return box
		}
		box = box.Inflate(margin)
		c.X, c.Y = box.Min.X, box.Min.Y
		c.Width, c.Height = box.Width(), box.Height()
		return box
	}
	fit(root)
}

func clone(l graph.Layout) graph.Layout {
	out := l
	out.Nodes = slices.Clone(l.Nodes)
	out.Edges = slices.Clone(l.Edges)
	out.Clusters = slices.Clone(l.Clusters)
	for i := range out.Clusters {
		out.Clusters[i].Children = slices.Clone(l.Clusters[i].Children)
		out.Clusters[i].Nodes = slices.Clone(l.Clusters[i].Nodes)
	}
	return out
}
