package uml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/render/label"
)

func TestClassLabel(t *testing.T) {
	nl, bd := label.NewLine, label.BoxDivide
	tests := []struct {
		name  string
		class Class
		want  string
	}{
		{"NameOnly", Class{Name: "A"}, "A"},
		{"Stereotype", Class{Name: "A", Stereotype: "interface"}, "«interface»" + nl + "A"},
		{"Attributes", Class{Name: "A", Attributes: []string{"x", "y"}}, "A" + bd + "x" + nl + "y"},
		{"OperationsOnly", Class{Name: "A", Operations: []string{"f()"}}, "A" + bd + bd + "f()"},
		{
			"Full",
			Class{Name: "A", Stereotype: "s", Attributes: []string{"x"}, Operations: []string{"f()", "g()"}},
			"«s»" + nl + "A" + bd + "x" + bd + "f()" + nl + "g()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.class.Label())
		})
	}
}

func TestKindStyle(t *testing.T) {
	tests := []struct {
		kind   Kind
		stroke graph.StrokeKind
		arrow  graph.ArrowType
	}{
		{Association, graph.StrokeSolid, graph.ArrowLast},
		{Bidirectional, graph.StrokeSolid, graph.ArrowNone},
		{Aggregation, graph.StrokeSolid, graph.ArrowFirst},
		{Composition, graph.StrokeSolid, graph.ArrowFirst},
		{Dependency, graph.StrokeDash, graph.ArrowLast},
		{Generalization, graph.StrokeDash, graph.ArrowLast},
		{Realization, graph.StrokeDash, graph.ArrowLast},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s := tt.kind.Stroke()
			assert.Equal(t, tt.stroke, s.Kind)
			assert.Equal(t, RelationWidth, s.Width)
			assert.Equal(t, tt.arrow, tt.kind.Arrow())
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		cur, next, want Kind
	}{
		{Association, Bidirectional, Bidirectional},
		{Association, Composition, Composition},
		{Bidirectional, Aggregation, Aggregation},
		{Aggregation, Composition, Composition},
		{Composition, Association, Composition},
		{Aggregation, Bidirectional, Aggregation},
		{Association, Dependency, Association},
		{Dependency, Composition, Dependency},
		{Generalization, Realization, Generalization},
	}
	for _, tt := range tests {
		t.Run(string(tt.cur)+"+"+string(tt.next), func(t *testing.T) {
			assert.Equal(t, tt.want, merge(tt.cur, tt.next))
		})
	}
}

func TestGraph(t *testing.T) {
	m, err := Parse([]byte(shopModel))
	require.NoError(t, err)

	l := m.Graph(10)
	require.NoError(t, l.Validate())
	assert.True(t, l.Directed)
	assert.True(t, l.EdgeGraphics)
	require.Len(t, l.Nodes, 3)

	order := l.Nodes[0]
	assert.Equal(t, "Order", order.ID)
	// "+ total(): int" is 14 characters over 3 lines.
	assert.InDelta(t, 14*0.75*10, order.Width, 1e-9)
	assert.InDelta(t, 3*1.3*10, order.Height, 1e-9)
	require.NotNil(t, order.Style)
	assert.Equal(t, ClassFill, order.Style.Fill)
	assert.Equal(t, graph.StrokeSolid, order.Style.Stroke.Kind)
	assert.Equal(t, 1.0, order.Style.Stroke.Width)
	assert.Zero(t, order.X)
	assert.Zero(t, order.Y)

	entity := l.Nodes[2]
	assert.InDelta(t, 2*1.3*10, entity.Height, 1e-9)
	assert.InDelta(t, 10*0.75*10, entity.Width, 1e-9)

	require.Len(t, l.Edges, 2)
	assert.Equal(t, graph.ArrowFirst, l.Edges[0].Arrow)
	assert.Equal(t, graph.StrokeDash, l.Edges[1].Stroke.Kind)

	require.Len(t, l.Clusters, 2)
	assert.True(t, l.Clusters[0].Root)
	assert.Equal(t, []int{1}, l.Clusters[0].Children)
	assert.Equal(t, "shop", l.Clusters[1].ID)
	assert.Equal(t, []string{"Order", "Item"}, l.Clusters[1].Nodes)
}

func TestGraphDeduplicatesRelations(t *testing.T) {
	m := &Model{
		Classes: []Class{{Name: "A"}, {Name: "B"}},
		Relations: []Relation{
			{From: "A", To: "B", Kind: Association},
			{From: "B", To: "A", Kind: Dependency},
			{From: "A", To: "B", Kind: Aggregation, Label: "owns"},
			{From: "A", To: "B", Kind: Bidirectional},
		},
	}
	require.NoError(t, m.Validate())

	l := m.Graph(10)
	require.Len(t, l.Edges, 2)

	ab := l.Edges[0]
	assert.Equal(t, "A->B", ab.Name())
	assert.Equal(t, graph.ArrowFirst, ab.Arrow)
	assert.Equal(t, "owns", ab.Label)

	ba := l.Edges[1]
	assert.Equal(t, "B->A", ba.Name())
	assert.Equal(t, graph.StrokeDash, ba.Stroke.Kind)
}

func TestGraphWithoutPackages(t *testing.T) {
	m := &Model{Classes: []Class{{Name: "A"}}}
	l := m.Graph(12)
	assert.Empty(t, l.Clusters)
	assert.Empty(t, l.Edges)
	assert.InDelta(t, 0.75*12, l.Nodes[0].Width, 1e-9)
}
