package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/layout"
	"github.com/matzehuels/umlsvg/pkg/uml"
)

// ComputeLayout builds the class graph of m at the configured font size and
// places it with Graphviz.
func ComputeLayout(ctx context.Context, m *uml.Model, opts Options) (graph.Layout, error) {
	g := m.Graph(opts.Settings.FontSize)
	l, err := layout.Compute(ctx, g, opts.Graphviz)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("graphviz %s: %w", opts.Graphviz.Engine, err)
	}
	return l, nil
}
