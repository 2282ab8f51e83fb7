package sink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/umlsvg/pkg/geom"
	"github.com/matzehuels/umlsvg/pkg/render"
	"github.com/matzehuels/umlsvg/pkg/render/scene"
	"github.com/matzehuels/umlsvg/pkg/render/style"
)

// DefaultScale is the PNG pixel density relative to user units.
const DefaultScale = 2.0

// maxPixels bounds the raster size to keep huge diagrams from exhausting memory.
const maxPixels = 16384 * 16384

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	rsvg       bool
	ctx        context.Context
	background color.Color
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithRSVG rasterizes through rsvg-convert instead of the built-in painter.
func WithRSVG(ctx context.Context) PNGOption {
	return func(r *pngRenderer) { r.rsvg = true; r.ctx = ctx }
}

// WithBackground sets the canvas color. Nil leaves the canvas transparent.
func WithBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes doc. The canvas covers the view box at the chosen scale.
func RenderPNG(doc *scene.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}
	if r.rsvg {
		return render.ToPNG(r.ctx, RenderSVG(doc), r.scale)
	}

	vb := doc.ViewBox
	w := int(math.Ceil(vb.Width() * r.scale))
	h := int(math.Ceil(vb.Height() * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty view box %gx%g", vb.Width(), vb.Height())
	}
	if w*h > maxPixels {
		return nil, fmt.Errorf("png: %dx%d exceeds raster limit, lower the scale", w, h)
	}

	dc := gg.NewContext(w, h)
	if r.background != nil {
		dc.SetColor(r.background)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)
	dc.Translate(-vb.Min.X, -vb.Min.Y)

	p := painter{dc: dc, scale: r.scale, fontSize: doc.FontSize}
	for _, e := range doc.Elements {
		if err := p.element(e); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

type painter struct {
	dc       *gg.Context
	scale    float64
	fontSize float64
	faces    map[float64]font.Face
}

func (p *painter) element(e scene.Element) error {
	switch e := e.(type) {
	case *scene.Group:
		p.dc.Push()
		defer p.dc.Pop()
		if e.Translate != nil {
			p.dc.Translate(e.Translate.X, e.Translate.Y)
		}
		for _, c := range e.Children {
			if err := p.element(c); err != nil {
				return err
			}
		}
	case *scene.Rect:
		p.dc.DrawRectangle(p.resolve(e.X), p.resolve(e.Y), p.resolve(e.Width), p.resolve(e.Height))
		p.finish(e.Paint, color.Black)
	case *scene.Line:
		p.dc.DrawLine(p.resolve(e.X1), p.resolve(e.Y1), p.resolve(e.X2), p.resolve(e.Y2))
		p.finish(e.Paint, nil)
	case *scene.Path:
		p.path(e.Data)
		p.finish(e.Paint, color.Black)
	case *scene.Polygon:
		for i, pt := range e.Points {
			if i == 0 {
				p.dc.MoveTo(pt.X, pt.Y)
			} else {
				p.dc.LineTo(pt.X, pt.Y)
			}
		}
		p.dc.ClosePath()
		p.finish(e.Paint, color.Black)
	case *scene.Text:
		return p.text(e)
	}
	return nil
}

func (p *painter) resolve(l scene.Length) float64 { return l.Resolve(p.fontSize) }

func (p *painter) path(data geom.Path) {
	var cur geom.Point
	for _, c := range data.Commands() {
		switch c.Op {
		case geom.OpMove:
			p.dc.MoveTo(c.To.X, c.To.Y)
		case geom.OpLine:
			p.dc.LineTo(c.To.X, c.To.Y)
		case geom.OpCubic:
			p.dc.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
		case geom.OpArc:
			center, r, a0, a1 := geom.ArcCenter(cur, c.To, c.Radius, c.Sweep)
			if r == 0 {
				p.dc.LineTo(c.To.X, c.To.Y)
			} else {
				p.dc.DrawArc(center.X, center.Y, r, a0, a1)
			}
		}
		cur = c.To
	}
}

// finish fills and strokes the current path. An empty fill uses
// defaultFill, matching SVG where unpainted shapes fill black.
func (p *painter) finish(paint scene.Paint, defaultFill color.Color) {
	fill := defaultFill
	if paint.Fill != "" {
		fill, _ = style.ParseColor(paint.Fill)
	}
	stroke, hasStroke := style.ParseColor(paint.Stroke)

	if fill != nil {
		p.dc.SetColor(fill)
		if hasStroke {
			p.dc.FillPreserve()
		} else {
			p.dc.Fill()
		}
	}
	if !hasStroke {
		p.dc.ClearPath()
		return
	}

	width := paint.StrokeWidth
	if width <= 0 {
		width = 1
	}
	// Line widths and dashes are not transformed by the context matrix.
	p.dc.SetLineWidth(width * p.scale)
	dashes := make([]float64, len(paint.DashArray))
	for i, d := range paint.DashArray {
		dashes[i] = d * p.scale
	}
	p.dc.SetDash(dashes...)
	p.dc.SetColor(stroke)
	p.dc.Stroke()
}

func (p *painter) text(t *scene.Text) error {
	size := t.FontSize
	if size <= 0 {
		size = p.fontSize
	}
	face, err := p.face(size)
	if err != nil {
		return err
	}
	p.dc.SetFontFace(face)

	var x, y float64
	if t.Pos != nil {
		x, y = t.Pos.X, t.Pos.Y
	}
	x += t.DX.Resolve(size)
	y += t.DY.Resolve(size)

	fill := color.Color(color.Black)
	if c, ok := style.ParseColor(t.Fill); ok {
		fill = c
	}
	p.dc.SetColor(fill)

	ax, ay := 0.0, 0.0
	if t.Anchor == scene.AnchorMiddle {
		ax = 0.5
	}
	if t.MiddleAlign {
		ay = 0.35
	}

	measured, _ := p.dc.MeasureString(t.Content)
	target := t.TextLength.Resolve(size)
	if !t.LengthAdjust || target <= 0 || measured == 0 {
		p.dc.DrawStringAnchored(t.Content, x, y, ax, ay)
		return nil
	}

	p.dc.Push()
	p.dc.Translate(x, y)
	p.dc.Scale(target/measured, 1)
	p.dc.DrawStringAnchored(t.Content, 0, 0, ax, ay)
	p.dc.Pop()
	return nil
}

func (p *painter) face(size float64) (font.Face, error) {
	if f, ok := p.faces[size]; ok {
		return f, nil
	}
	ttf, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	if p.faces == nil {
		p.faces = make(map[float64]font.Face)
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	p.faces[size] = f
	return f, nil
}
