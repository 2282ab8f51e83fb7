package sink

import (
	"github.com/matzehuels/umlsvg/pkg/graph"
)

// RenderJSON exports the positioned layout as a pretty-printed JSON document
// that graph.ReadLayout accepts back unchanged.
func RenderJSON(l graph.Layout) ([]byte, error) {
	return graph.MarshalLayout(l)
}
