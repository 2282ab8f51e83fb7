package sink

import (
	"context"

	"github.com/matzehuels/umlsvg/pkg/render"
	"github.com/matzehuels/umlsvg/pkg/render/scene"
)

// RenderPDF renders doc as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, doc *scene.Document) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(doc))
}
