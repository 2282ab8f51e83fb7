package diagram

import (
	"cmp"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlsvg/pkg/geom"
	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/render/arrow"
	"github.com/matzehuels/umlsvg/pkg/render/clip"
	"github.com/matzehuels/umlsvg/pkg/render/curve"
	"github.com/matzehuels/umlsvg/pkg/render/label"
	"github.com/matzehuels/umlsvg/pkg/render/scene"
	"github.com/matzehuels/umlsvg/pkg/render/style"
)

// TextClass is the style rule shared by all node labels.
const TextClass = "font_style"

const (
	dividerColor = "black"
	dividerWidth = 2.0
)

// Stats counts what a render emitted.
type Stats struct {
	Clusters     int
	Nodes        int
	Edges        int
	SkippedEdges int
	Arrowheads   int
}

// Option configures a render.
type Option func(*renderer)

// WithLogger sets the logger for diagnostics. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(r *renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

type renderer struct {
	layout   graph.Layout
	settings Settings
	curve    curve.Builder
	logger   *log.Logger
	index    map[string]int

	doc   *scene.Document
	stats Stats
}

// Render draws l into a new document. l must be valid (see graph.Layout.Validate).
func Render(l graph.Layout, s Settings, opts ...Option) (*scene.Document, Stats) {
	s = s.withDefaults()
	r := &renderer{
		layout:   l,
		settings: s,
		curve:    curve.New(s.Curviness, s.Mode()),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		index:    l.NodeIndex(),
		doc:      &scene.Document{},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.header()
	if len(l.Clusters) > 0 {
		r.clusters()
	}
	r.nodes()
	if l.EdgeGraphics {
		r.edges()
	}
	return r.doc, r.stats
}

// =============================================================================
// Header
// =============================================================================

func (r *renderer) header() {
	box := r.layout.Bounds()
	m := geom.Pt(r.settings.Margin, r.settings.Margin)
	r.doc.ViewBox = geom.Rect{Min: box.Min.Sub(m), Max: box.Max.Add(m)}
	r.doc.Width = r.settings.Width
	r.doc.Height = r.settings.Height
	r.doc.FontSize = r.settings.FontSize
	r.doc.TextClass = TextClass
}

// =============================================================================
// Clusters
// =============================================================================

func (r *renderer) clusters() {
	root := r.layout.Root()
	if root < 0 {
		panic("diagram: clusters present without a root cluster")
	}

	queue := slices.Clone(r.layout.Clusters[root].Children)
	for len(queue) > 0 {
		c := r.layout.Clusters[queue[0]]
		queue = queue[1:]

		r.doc.Append(clusterRect(c))
		r.stats.Clusters++
		queue = append(queue, c.Children...)
	}
}

func clusterRect(c graph.Cluster) *scene.Rect {
	paint := scene.Paint{
		Fill:        "none",
		Stroke:      "none",
		StrokeWidth: c.Style.Stroke.LineWidth(),
	}
	if c.Style.HasFill() {
		paint.Fill = c.Style.Fill
	}
	if style.Visible(c.Style.Stroke.Kind) {
		paint.Stroke = c.Style.Stroke.LineColor()
	}
	return &scene.Rect{
		X:      scene.U(c.X),
		Y:      scene.U(c.Y),
		Width:  scene.U(c.Width),
		Height: scene.U(c.Height),
		Paint:  paint,
	}
}

// =============================================================================
// Nodes
// =============================================================================

func (r *renderer) nodes() {
	nodes := r.layout.Nodes
	if r.layout.HasDepth() {
		nodes = slices.Clone(nodes)
		slices.SortStableFunc(nodes, func(a, b graph.Node) int {
			return cmp.Compare(depth(a), depth(b))
		})
	}
	for _, n := range nodes {
		r.doc.Append(r.node(n))
		r.stats.Nodes++
	}
}

func depth(n graph.Node) float64 {
	if n.Z == nil {
		return 0
	}
	return *n.Z
}

func (r *renderer) node(n graph.Node) *scene.Group {
	lbl := label.Compute(n.Label)
	origin := geom.Pt(n.X-n.Width/2, n.Y-n.Height/2)
	g := &scene.Group{Class: TextClass, Translate: &origin}

	rect := &scene.Rect{
		Width:  scene.Em(lbl.Width()),
		Height: scene.Em(lbl.Height()),
	}
	if n.Style != nil {
		rect.Paint = shapePaint(*n.Style)
	}
	g.Append(rect)

	for _, seg := range lbl.Segments {
		g.Append(&scene.Text{
			Content:      seg.Text,
			DX:           scene.Em(label.Indent),
			DY:           scene.Em(seg.Baseline),
			Anchor:       scene.AnchorStart,
			Fill:         r.settings.FontColor,
			TextLength:   scene.Em(seg.TextLength()),
			LengthAdjust: true,
		})
		if seg.Divider {
			y := scene.Em(seg.DividerY())
			g.Append(&scene.Line{
				X1: scene.U(0), Y1: y,
				X2: scene.Em(lbl.Width()), Y2: y,
				Paint: scene.Paint{Stroke: dividerColor, StrokeWidth: dividerWidth},
			})
		}
	}
	return g
}

func shapePaint(s graph.Style) scene.Paint {
	p := scene.Paint{
		Fill:        s.Fill,
		StrokeWidth: s.Stroke.LineWidth(),
	}
	if p.Fill == "" {
		p.Fill = "none"
	}
	if !style.Visible(s.Stroke.Kind) {
		p.Stroke = "none"
		return p
	}
	p.Stroke = s.Stroke.LineColor()
	p.DashArray = style.DashArray(s.Stroke.Kind, s.Stroke.LineWidth())
	return p
}

// =============================================================================
// Edges
// =============================================================================

func (r *renderer) edges() {
	g := &scene.Group{}
	for _, e := range r.layout.Edges {
		if eg, ok := r.edge(e); ok {
			g.Append(eg)
			r.stats.Edges++
		} else {
			r.stats.SkippedEdges++
		}
	}
	r.doc.Append(g)
}

func (r *renderer) edge(e graph.Edge) (*scene.Group, bool) {
	src := r.layout.Nodes[r.index[e.Source]]
	tgt := r.layout.Nodes[r.index[e.Target]]
	srcBox, tgtBox := src.Box(), tgt.Box()
	srcArrow, tgtArrow := e.Arrow.Ends(r.layout.Directed)

	stroke := edgeStroke(e)
	srcEnd := clip.End{Box: srcBox}
	tgtEnd := clip.End{Box: tgtBox}
	if srcArrow {
		srcEnd.Margin = clip.ArrowSize(stroke.LineWidth(), srcBox, tgtBox)
	}
	if tgtArrow {
		tgtEnd.Margin = clip.ArrowSize(stroke.LineWidth(), tgtBox, srcBox)
	}

	route := make([]geom.Point, 0, len(e.Bends)+2)
	route = append(route, src.Center())
	route = append(route, e.Bends...)
	route = append(route, tgt.Center())

	pts := clip.Visible(route, srcEnd, tgtEnd)
	if len(pts) < 2 {
		r.logger.Warn("could not draw edge since nodes are overlapping",
			"edge", e.Name(), "source", e.Source, "target", e.Target)
		return nil, false
	}

	pts = enterBoxes(pts, src, tgt)

	g := &scene.Group{}
	var heads []*scene.Polygon
	fill := stroke.LineColor()

	first, last := 0, len(pts)-1
	if srcArrow {
		h := arrow.Place(pts[first+1], pts[first], srcBox, srcEnd.Margin)
		pts[first] = h.Tip
		heads = append(heads, scene.NewPolygon(scene.Paint{Fill: fill}, h.Coords()...))
	} else {
		pts[first] = arrow.Boundary(pts[first+1], pts[first], srcBox)
	}
	if tgtArrow {
		h := arrow.Place(pts[last-1], pts[last], tgtBox, tgtEnd.Margin)
		pts[last] = h.Tip
		heads = append(heads, scene.NewPolygon(scene.Paint{Fill: fill}, h.Coords()...))
	} else {
		pts[last] = arrow.Boundary(pts[last-1], pts[last], tgtBox)
	}

	if e.Label != "" {
		mid := pts[0].Mid(pts[1])
		g.Append(&scene.Text{
			Content:     e.Label,
			Pos:         &mid,
			Anchor:      scene.AnchorMiddle,
			MiddleAlign: true,
			FontFamily:  r.settings.FontFamily,
			FontSize:    r.settings.FontSize,
			Fill:        r.settings.FontColor,
		})
	}

	g.Append(&scene.Path{Data: r.curve.Build(pts), Paint: linePaint(e.Stroke)})
	for _, h := range heads {
		g.Append(h)
		r.stats.Arrowheads++
	}
	return g, true
}

func edgeStroke(e graph.Edge) graph.Stroke {
	if e.Stroke == nil {
		return graph.Stroke{Kind: graph.StrokeSolid, Width: 1, Color: graph.DefaultColor}
	}
	return *e.Stroke
}

// linePaint styles an edge path. Edges without a stroke draw a default
// black line; a stroke of kind none hides the path.
func linePaint(s *graph.Stroke) scene.Paint {
	p := scene.Paint{Fill: "none"}
	if s == nil {
		p.Stroke = graph.DefaultColor
		return p
	}
	if !style.Visible(s.Kind) {
		return p
	}
	p.Stroke = s.LineColor()
	p.StrokeWidth = s.LineWidth()
	p.DashArray = style.DashArray(s.Kind, s.LineWidth())
	return p
}

// enterBoxes makes both ends of pts lie inside their node boxes. An end that
// stopped on a bend in the arrow margin is extended to the node center, so
// the boundary crossing is taken on the segment that actually enters the box.
func enterBoxes(pts []geom.Point, src, tgt graph.Node) []geom.Point {
	if !src.Box().Contains(pts[0]) {
		pts = append([]geom.Point{src.Center()}, pts...)
	}
	if !tgt.Box().Contains(pts[len(pts)-1]) {
		pts = append(pts, tgt.Center())
	}
	return pts
}
