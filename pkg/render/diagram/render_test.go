package diagram

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/umlsvg/pkg/geom"
	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/render/scene"
)

func twoNodes(directed bool) graph.Layout {
	return graph.Layout{
		Directed:     directed,
		EdgeGraphics: true,
		Nodes: []graph.Node{
			{ID: "A", X: 0, Y: 0, Width: 100, Height: 40, Label: "A"},
			{ID: "B", X: 300, Y: 0, Width: 100, Height: 40, Label: "B"},
		},
		Edges: []graph.Edge{{Source: "A", Target: "B"}},
	}
}

// edgeGroups returns the per-edge groups from the trailing edge container.
func edgeGroups(t *testing.T, doc *scene.Document) []*scene.Group {
	t.Helper()
	require.NotEmpty(t, doc.Elements)
	outer, ok := doc.Elements[len(doc.Elements)-1].(*scene.Group)
	require.True(t, ok, "last element should be the edge group")
	var out []*scene.Group
	for _, c := range outer.Children {
		g, ok := c.(*scene.Group)
		require.True(t, ok)
		out = append(out, g)
	}
	return out
}

func partsOf(g *scene.Group) (texts []*scene.Text, paths []*scene.Path, polys []*scene.Polygon) {
	for _, c := range g.Children {
		switch e := c.(type) {
		case *scene.Text:
			texts = append(texts, e)
		case *scene.Path:
			paths = append(paths, e)
		case *scene.Polygon:
			polys = append(polys, e)
		}
	}
	return
}

func TestRenderUndirectedEdge(t *testing.T) {
	doc, stats := Render(twoNodes(false), DefaultSettings())

	groups := edgeGroups(t, doc)
	require.Len(t, groups, 1)
	_, paths, polys := partsOf(groups[0])
	require.Len(t, paths, 1)
	assert.Equal(t, "M50,0 L250,0", paths[0].Data.String())
	assert.Empty(t, polys)
	assert.Equal(t, Stats{Nodes: 2, Edges: 1}, stats)
}

func TestRenderDirectedDefaultArrow(t *testing.T) {
	doc, stats := Render(twoNodes(true), DefaultSettings())

	groups := edgeGroups(t, doc)
	require.Len(t, groups, 1)
	_, paths, polys := partsOf(groups[0])
	require.Len(t, paths, 1)
	require.Len(t, polys, 1)

	assert.Equal(t, "M50,0 L250,0", paths[0].Data.String())
	tip := polys[0].Points[0]
	assert.InDelta(t, 250, tip.X, 1e-9)
	assert.InDelta(t, 0, tip.Y, 1e-9)
	assert.InDelta(t, 232.5, polys[0].Points[1].X, 1e-9)
	assert.InDelta(t, 4.375, polys[0].Points[1].Y, 1e-9)
	assert.InDelta(t, -4.375, polys[0].Points[2].Y, 1e-9)
	assert.Equal(t, graph.DefaultColor, polys[0].Fill)
	assert.Equal(t, 1, stats.Arrowheads)
}

func TestRenderArrowTypes(t *testing.T) {
	tests := []struct {
		name   string
		arrow  graph.ArrowType
		want   int
		tipsAt []float64
	}{
		{"none", graph.ArrowNone, 0, nil},
		{"first", graph.ArrowFirst, 1, []float64{50}},
		{"last", graph.ArrowLast, 1, []float64{250}},
		{"both", graph.ArrowBoth, 2, []float64{50, 250}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := twoNodes(true)
			l.Edges[0].Arrow = tt.arrow
			doc, _ := Render(l, DefaultSettings())

			_, paths, polys := partsOf(edgeGroups(t, doc)[0])
			require.Len(t, polys, tt.want)
			for i, x := range tt.tipsAt {
				assert.InDelta(t, x, polys[i].Points[0].X, 1e-9)
			}
			assert.Equal(t, "M50,0 L250,0", paths[0].Data.String())
		})
	}
}

func TestRenderEdgeLabel(t *testing.T) {
	l := twoNodes(false)
	l.Edges[0].Label = "uses"
	doc, _ := Render(l, DefaultSettings())

	texts, _, _ := partsOf(edgeGroups(t, doc)[0])
	require.Len(t, texts, 1)
	assert.Equal(t, "uses", texts[0].Content)
	require.NotNil(t, texts[0].Pos)
	assert.InDelta(t, 150, texts[0].Pos.X, 1e-9)
	assert.InDelta(t, 0, texts[0].Pos.Y, 1e-9)
	assert.Equal(t, scene.AnchorMiddle, texts[0].Anchor)
	assert.True(t, texts[0].MiddleAlign)
	assert.Equal(t, DefaultFontFamily, texts[0].FontFamily)
}

func TestRenderEdgeStroke(t *testing.T) {
	tests := []struct {
		name   string
		stroke *graph.Stroke
		want   scene.Paint
	}{
		{
			name:   "default",
			stroke: nil,
			want:   scene.Paint{Fill: "none", Stroke: "#000000"},
		},
		{
			name:   "dashed",
			stroke: &graph.Stroke{Kind: graph.StrokeDash, Width: 2, Color: "red"},
			want:   scene.Paint{Fill: "none", Stroke: "red", StrokeWidth: 2, DashArray: []float64{8, 4}},
		},
		{
			name:   "hidden",
			stroke: &graph.Stroke{Kind: graph.StrokeNone, Width: 2},
			want:   scene.Paint{Fill: "none"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := twoNodes(false)
			l.Edges[0].Stroke = tt.stroke
			doc, _ := Render(l, DefaultSettings())
			_, paths, _ := partsOf(edgeGroups(t, doc)[0])
			require.Len(t, paths, 1)
			assert.Equal(t, tt.want, paths[0].Paint)
		})
	}
}

func TestRenderOverlappingNodesSkipsEdge(t *testing.T) {
	l := twoNodes(false)
	l.Nodes[1].X = 20
	l.Edges = append(l.Edges, graph.Edge{ID: "e2", Source: "B", Target: "A"})

	var buf bytes.Buffer
	logger := log.New(&buf)
	doc, stats := Render(l, DefaultSettings(), WithLogger(logger))

	assert.Empty(t, edgeGroups(t, doc))
	assert.Equal(t, 2, stats.SkippedEdges)
	assert.Contains(t, buf.String(), "could not draw edge since nodes are overlapping")
	assert.Contains(t, buf.String(), "e2")
	assert.Contains(t, buf.String(), "A->B")
}

func TestRenderBendsAndCurviness(t *testing.T) {
	l := graph.Layout{
		EdgeGraphics: true,
		Nodes: []graph.Node{
			{ID: "A", X: 0, Y: 0, Width: 40, Height: 40},
			{ID: "B", X: 200, Y: 200, Width: 40, Height: 40},
		},
		Edges: []graph.Edge{{Source: "A", Target: "B", Bends: []geom.Point{{X: 200, Y: 0}}}},
	}

	tests := []struct {
		name string
		s    Settings
		want string
	}{
		{"straight", DefaultSettings(), "M20,0 L200,0 L200,180"},
		{"rounded", Settings{Curviness: 0.5}, "M20,0 L155,0 A45,45 0 0 1 200,45 L200,180"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := Render(l, tt.s)
			_, paths, _ := partsOf(edgeGroups(t, doc)[0])
			require.Len(t, paths, 1)
			assert.Equal(t, tt.want, paths[0].Data.String())
		})
	}
}

func TestRenderBendInArrowMargin(t *testing.T) {
	l := twoNodes(true)
	// (240,35) is outside B but within its 17.5 arrow margin.
	l.Edges[0].Bends = []geom.Point{{X: 240, Y: 35}}

	doc, stats := Render(l, DefaultSettings())
	assert.Zero(t, stats.SkippedEdges)

	_, paths, polys := partsOf(edgeGroups(t, doc)[0])
	require.Len(t, paths, 1)
	require.Len(t, polys, 1)

	pts := paths[0].Data.Points()
	require.Len(t, pts, 3)
	assert.InDelta(t, 50, pts[0].X, 1e-9)
	assert.InDelta(t, 35-190*35.0/240, pts[0].Y, 1e-9)
	assert.Equal(t, geom.Pt(240, 35), pts[1])

	tip := pts[2]
	assert.InDelta(t, 240+15*60.0/35, tip.X, 1e-9)
	assert.InDelta(t, 20, tip.Y, 1e-9)
	assert.Equal(t, tip, polys[0].Points[0])
	assert.True(t, l.Nodes[1].Box().Inflate(1e-9).Contains(tip), "tip on B's boundary")
}

func TestRenderNoEdgeGraphics(t *testing.T) {
	l := twoNodes(false)
	l.EdgeGraphics = false
	doc, stats := Render(l, DefaultSettings())

	assert.Len(t, doc.Elements, 2)
	assert.Zero(t, stats.Edges)
}

func TestRenderHeader(t *testing.T) {
	s := DefaultSettings()
	s.Margin = 5
	s.Width = "800px"
	doc, _ := Render(twoNodes(false), s)

	assert.Equal(t, geom.Rect{Min: geom.Pt(-55, -25), Max: geom.Pt(355, 25)}, doc.ViewBox)
	assert.Equal(t, "800px", doc.Width)
	assert.Empty(t, doc.Height)
	assert.Equal(t, TextClass, doc.TextClass)
	assert.InDelta(t, 10, doc.FontSize, 0)
}

func TestRenderNode(t *testing.T) {
	l := graph.Layout{Nodes: []graph.Node{{
		ID: "A", X: 50, Y: 20, Width: 100, Height: 40,
		Label: "foo<svg_new_line>bar<svg_box_divide>baz",
		Style: &graph.Style{Fill: "antiquewhite", Stroke: graph.Stroke{Kind: graph.StrokeDot, Width: 2, Color: "navy"}},
	}}}
	doc, _ := Render(l, DefaultSettings())

	require.Len(t, doc.Elements, 1)
	g := doc.Elements[0].(*scene.Group)
	assert.Equal(t, TextClass, g.Class)
	assert.Equal(t, geom.Pt(0, 0), *g.Translate)

	rect := g.Children[0].(*scene.Rect)
	assert.Equal(t, scene.Em(2.25), rect.Width)
	assert.InDelta(t, 3.9, rect.Height.Value, 1e-9)
	assert.Equal(t, scene.Paint{Fill: "antiquewhite", Stroke: "navy", StrokeWidth: 2, DashArray: []float64{2, 4}}, rect.Paint)

	var lines []string
	var dividers []*scene.Line
	for _, c := range g.Children[1:] {
		switch e := c.(type) {
		case *scene.Text:
			lines = append(lines, e.Content)
			assert.Equal(t, scene.Em(0.17), e.DX)
			assert.True(t, e.LengthAdjust)
		case *scene.Line:
			dividers = append(dividers, e)
		}
	}
	assert.Equal(t, []string{"foo", "bar", "baz"}, lines)
	require.Len(t, dividers, 1)
	assert.InDelta(t, 0.83+1.1+0.34, dividers[0].Y1.Value, 1e-9)
	assert.Equal(t, "black", dividers[0].Stroke)
}

func TestRenderUnstyledNode(t *testing.T) {
	l := graph.Layout{Nodes: []graph.Node{{ID: "A", Width: 10, Height: 10, Label: "a"}}}
	doc, _ := Render(l, DefaultSettings())
	rect := doc.Elements[0].(*scene.Group).Children[0].(*scene.Rect)
	assert.Equal(t, scene.Paint{}, rect.Paint)
}

func TestRenderDepthOrder(t *testing.T) {
	z := func(v float64) *float64 { return &v }
	l := graph.Layout{Nodes: []graph.Node{
		{ID: "top", Width: 1, Height: 1, Label: "top", Z: z(2)},
		{ID: "flat", Width: 1, Height: 1, Label: "flat"},
		{ID: "bottom", Width: 1, Height: 1, Label: "bottom", Z: z(-1)},
		{ID: "flat2", Width: 1, Height: 1, Label: "flat2"},
	}}
	doc, _ := Render(l, DefaultSettings())

	var order []string
	for _, e := range doc.Elements {
		g := e.(*scene.Group)
		order = append(order, g.Children[1].(*scene.Text).Content)
	}
	assert.Equal(t, []string{"bottom", "flat", "flat2", "top"}, order)
	assert.Equal(t, "top", l.Nodes[0].ID, "input must not be reordered")
}

func TestRenderClustersBreadthFirst(t *testing.T) {
	l := graph.Layout{
		Nodes: []graph.Node{{ID: "A", X: 10, Y: 10, Width: 4, Height: 4}},
		Clusters: []graph.Cluster{
			{ID: "inner", X: 5, Y: 5, Width: 10, Height: 10, Style: graph.Style{Stroke: graph.Stroke{Kind: graph.StrokeNone}}},
			{ID: "root", Root: true, Children: []int{2, 3}},
			{ID: "outer", X: 0, Y: 0, Width: 30, Height: 30, Children: []int{0},
				Style: graph.Style{Fill: "#eeeeee", Stroke: graph.Stroke{Width: 3, Color: "gray"}}},
			{ID: "side", X: 40, Y: 0, Width: 5, Height: 5},
		},
	}
	doc, stats := Render(l, DefaultSettings())

	require.Len(t, doc.Elements, 4)
	rects := []*scene.Rect{
		doc.Elements[0].(*scene.Rect),
		doc.Elements[1].(*scene.Rect),
		doc.Elements[2].(*scene.Rect),
	}
	assert.Equal(t, scene.U(0), rects[0].X)
	assert.Equal(t, scene.U(40), rects[1].X)
	assert.Equal(t, scene.U(5), rects[2].X)

	assert.Equal(t, scene.Paint{Fill: "#eeeeee", Stroke: "gray", StrokeWidth: 3}, rects[0].Paint)
	assert.Equal(t, scene.Paint{Fill: "none", Stroke: "none", StrokeWidth: 1}, rects[2].Paint)
	assert.Equal(t, 3, stats.Clusters)
}

func TestRenderClustersWithoutRootPanics(t *testing.T) {
	l := graph.Layout{Clusters: []graph.Cluster{{ID: "c"}}}
	assert.Panics(t, func() { Render(l, DefaultSettings()) })
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"negative margin", func(s *Settings) { s.Margin = -1 }, true},
		{"curviness above one", func(s *Settings) { s.Curviness = 1.5 }, true},
		{"zero font", func(s *Settings) { s.FontSize = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if tt.wantErr {
				assert.Error(t, s.Validate())
			} else {
				assert.NoError(t, s.Validate())
			}
		})
	}
}
