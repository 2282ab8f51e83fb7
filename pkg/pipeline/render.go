package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/render/diagram"
	"github.com/matzehuels/umlsvg/pkg/render/sink"
)

// Render draws l once and encodes the drawing in every requested format.
// Formats are encoded concurrently.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, diagram.Stats, error) {
	if opts.NoEdges {
		l.EdgeGraphics = false
	}
	doc, stats := diagram.Render(l, opts.Settings, diagram.WithLogger(opts.Logger))

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			var (
				data []byte
				err  error
			)
			switch format {
			case FormatSVG:
				data = sink.RenderSVG(doc)
			case FormatPNG:
				data, err = sink.RenderPNG(doc, sink.WithScale(opts.Scale))
			case FormatPDF:
				data, err = sink.RenderPDF(gctx, doc)
			case FormatJSON:
				data, err = sink.RenderJSON(l)
			default:
				err = fmt.Errorf("unsupported format: %s", format)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	return artifacts, stats, nil
}
