package uml

import (
	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/render/label"
)

// Class box appearance.
const (
	ClassFill        = "antiquewhite"
	ClassStrokeWidth = 1.0
	RelationWidth    = 2.0
	PackageColor     = "#808080"
)

// Label returns the marker-encoded label text of a class box: an optional
// stereotype line above the name, then an attribute section and an operation
// section separated by box dividers. The attribute section is emitted, empty
// if need be, whenever the class has operations.
func (c Class) Label() string {
	head := []string{c.Name}
	if c.Stereotype != "" {
		head = []string{"«" + c.Stereotype + "»", c.Name}
	}
	switch {
	case len(c.Operations) > 0:
		return label.Join(head, c.Attributes, c.Operations)
	case len(c.Attributes) > 0:
		return label.Join(head, c.Attributes)
	default:
		return label.Join(head)
	}
}

// Stroke returns the line style of the relation kind.
func (k Kind) Stroke() graph.Stroke {
	s := graph.Stroke{Kind: graph.StrokeSolid, Width: RelationWidth}
	switch k {
	case Dependency, Generalization, Realization:
		s.Kind = graph.StrokeDash
	}
	return s
}

// Arrow returns where the relation kind draws its arrowhead. Whole-part
// relations point at the whole, which is the relation source.
func (k Kind) Arrow() graph.ArrowType {
	switch k {
	case Bidirectional:
		return graph.ArrowNone
	case Aggregation, Composition:
		return graph.ArrowFirst
	default:
		return graph.ArrowLast
	}
}

// precedence orders the kinds a duplicate relation may be upgraded through.
var precedence = map[Kind]int{
	Association:   1,
	Bidirectional: 2,
	Aggregation:   3,
	Composition:   4,
}

// merge returns the kind a relation keeps when next repeats it.
func merge(cur, next Kind) Kind {
	a, b := precedence[cur], precedence[next]
	if a > 0 && b > a {
		return next
	}
	return cur
}

// Graph converts the model into an unplaced layout. Node sizes are derived
// from the class labels at fontSize. Every package becomes a cluster below a
// single root cluster; a model without packages has no clusters.
func (m *Model) Graph(fontSize float64) graph.Layout {
	l := graph.Layout{
		Directed:     true,
		EdgeGraphics: true,
		Nodes:        make([]graph.Node, 0, len(m.Classes)),
	}

	for _, c := range m.Classes {
		text := c.Label()
		box := label.Compute(text)
		l.Nodes = append(l.Nodes, graph.Node{
			ID:     c.Name,
			Width:  box.Width() * fontSize,
			Height: box.Height() * fontSize,
			Label:  text,
			Style: &graph.Style{
				Fill:   ClassFill,
				Stroke: graph.Stroke{Kind: graph.StrokeSolid, Width: ClassStrokeWidth},
			},
		})
	}

	l.Edges = m.edges()
	l.Clusters = m.clusters()
	return l
}

type pair struct{ from, to string }

func (m *Model) edges() []graph.Edge {
	index := make(map[pair]int, len(m.Relations))
	var rels []Relation
	for _, r := range m.Relations {
		key := pair{r.From, r.To}
		if i, ok := index[key]; ok {
			rels[i].Kind = merge(rels[i].Kind, r.Kind)
			if rels[i].Label == "" {
				rels[i].Label = r.Label
			}
			continue
		}
		index[key] = len(rels)
		rels = append(rels, r)
	}

	edges := make([]graph.Edge, len(rels))
	for i, r := range rels {
		stroke := r.Kind.Stroke()
		edges[i] = graph.Edge{
			Source: r.From,
			Target: r.To,
			Arrow:  r.Kind.Arrow(),
			Stroke: &stroke,
			Label:  r.Label,
		}
	}
	return edges
}

func (m *Model) clusters() []graph.Cluster {
	var (
		order   []string
		members = map[string][]string{}
	)
	for _, c := range m.Classes {
		if c.Package == "" {
			continue
		}
		if _, ok := members[c.Package]; !ok {
			order = append(order, c.Package)
		}
		members[c.Package] = append(members[c.Package], c.Name)
	}
	if len(order) == 0 {
		return nil
	}

	clusters := []graph.Cluster{{ID: "root", Root: true}}
	for _, pkg := range order {
		clusters[0].Children = append(clusters[0].Children, len(clusters))
		clusters = append(clusters, graph.Cluster{
			ID:    pkg,
			Nodes: members[pkg],
			Style: graph.Style{
				Fill:   "none",
				Stroke: graph.Stroke{Kind: graph.StrokeDot, Width: 1, Color: PackageColor},
			},
		})
	}
	return clusters
}
