package sink

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/umlsvg/pkg/geom"
	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/render/diagram"
	"github.com/matzehuels/umlsvg/pkg/render/scene"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Directed:     true,
		EdgeGraphics: true,
		Nodes: []graph.Node{
			{ID: "A", X: 0, Y: 0, Width: 100, Height: 40, Label: "Order<svg_box_divide>id", Style: &graph.Style{
				Fill: "antiquewhite", Stroke: graph.Stroke{Width: 1, Color: "black"},
			}},
			{ID: "B", X: 300, Y: 0, Width: 100, Height: 40, Label: "Item & <Line>"},
		},
		Edges: []graph.Edge{{
			Source: "A", Target: "B", Label: "has",
			Stroke: &graph.Stroke{Kind: graph.StrokeDash, Width: 2, Color: "#333333"},
		}},
	}
}

func TestRenderSVGHeader(t *testing.T) {
	doc := &scene.Document{
		ViewBox:   geom.Rect{Min: geom.Pt(-51, -21), Max: geom.Pt(351, 21)},
		Width:     "800px",
		FontSize:  10,
		TextClass: "font_style",
	}
	out := string(RenderSVG(doc))

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:ev="http://www.w3.org/2001/xml-events" version="1.1" baseProfile="full" width="800px" viewBox="-51 -21 402 42">`))
	assert.NotContains(t, out, "height=")
	assert.Contains(t, out, `<style type="text/css">.font_style {font: 10px monospace;}</style>`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestRenderSVGDiagram(t *testing.T) {
	doc, _ := diagram.Render(sampleLayout(), diagram.DefaultSettings())
	out := string(RenderSVG(doc))

	for _, want := range []string{
		`<g class="font_style" transform="translate(-50, -20)">`,
		`<rect x="0" y="0" width="3.75em" height="2.6em" fill="antiquewhite" stroke="black" stroke-width="1px"/>`,
		`<text dy="0.83em" dx="0.17em" text-anchor="start" fill="#000000" textLength="3.35em" lengthAdjust="spacingAndGlyphs">Order</text>`,
		`<line x1="0" y1="1.17em" x2="3.75em" y2="1.17em" stroke="black" stroke-width="2px"/>`,
		`Item &amp; &lt;Line&gt;</text>`,
		`<text x="150" y="0" text-anchor="middle" dominant-baseline="middle" font-family="Courier" font-size="10" fill="#000000">has</text>`,
		`<path d="M50,0 L250,0" fill="none" stroke="#333333" stroke-width="2px" stroke-dasharray="8,4"/>`,
		`<polygon points="250,0 232.5,4.38 232.5,-4.38" fill="#333333"/>`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	doc, _ := diagram.Render(sampleLayout(), diagram.DefaultSettings())
	dec := xml.NewDecoder(strings.NewReader(string(RenderSVG(doc))))
	for {
		_, err := dec.Token()
		if err != nil {
			require.EqualError(t, err, "EOF")
			break
		}
	}
}

func TestRenderSVGElementOrder(t *testing.T) {
	l := sampleLayout()
	l.Clusters = []graph.Cluster{
		{ID: "root", Root: true, Children: []int{1}},
		{ID: "pkg", X: -60, Y: -30, Width: 120, Height: 60},
	}
	doc, _ := diagram.Render(l, diagram.DefaultSettings())
	out := string(RenderSVG(doc))

	cluster := strings.Index(out, `<rect x="-60"`)
	node := strings.Index(out, `<g class="font_style"`)
	edge := strings.Index(out, `<path`)
	require.True(t, cluster > 0 && node > 0 && edge > 0)
	assert.Less(t, cluster, node)
	assert.Less(t, node, edge)
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a<b>", "a&lt;b&gt;"},
		{"x & y", "x &amp; y"},
		{`"q"`, "&#34;q&#34;"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeXML(tt.in))
		})
	}
}
