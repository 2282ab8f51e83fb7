// Package mcptools exposes the diagram pipeline as Model Context Protocol tools.
package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matzehuels/umlsvg/pkg/buildinfo"
	"github.com/matzehuels/umlsvg/pkg/pipeline"
)

// Tool names.
const (
	ToolRenderDiagram = "render_diagram"
	ToolLayoutModel   = "layout_model"
)

// NewServer creates an MCP server with the diagram tools registered.
func NewServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "umlsvg",
		Version: buildinfo.Short(),
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolRenderDiagram,
		Description: "Render a UML class diagram. Pass either a YAML class model (classes with attributes and operations, relations between them) or an already placed layout JSON. Returns SVG text, a layout JSON, or base64 encoded PNG.",
	}, svc.RenderDiagram)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolLayoutModel,
		Description: "Place a YAML class model with Graphviz and return the layout JSON (node centers and sizes, edge bend points, package rectangles). The result can be edited and passed back to render_diagram.",
	}, svc.LayoutModel)

	return server
}

// Run serves the tools over stdin/stdout until ctx is cancelled or the client
// disconnects.
func Run(ctx context.Context, runner *pipeline.Runner) error {
	return NewServer(NewService(runner)).Run(ctx, &mcp.StdioTransport{})
}
