package mcptools

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/layout"
	"github.com/matzehuels/umlsvg/pkg/pipeline"
	"github.com/matzehuels/umlsvg/pkg/render/diagram"
)

// RenderDiagramInput is the argument of render_diagram.
type RenderDiagramInput struct {
	Model     string  `json:"model,omitempty" jsonschema:"YAML class model; mutually exclusive with layout"`
	Layout    string  `json:"layout,omitempty" jsonschema:"placed layout JSON as returned by layout_model"`
	Format    string  `json:"format,omitempty" jsonschema:"output format: svg (default), json or png"`
	Curviness float64 `json:"curviness,omitempty" jsonschema:"edge bend rounding between 0 (straight) and 1"`
	Bezier    bool    `json:"bezier,omitempty" jsonschema:"interpolate bends with cubic Bezier curves instead of rounded corners"`
	RankDir   string  `json:"rankdir,omitempty" jsonschema:"layout direction for models: TB (default), LR, BT or RL"`
}

// RenderDiagramOutput is the result of render_diagram.
type RenderDiagramOutput struct {
	Format       string `json:"format"`
	Encoding     string `json:"encoding" jsonschema:"utf-8 for text formats, base64 for png"`
	Content      string `json:"content"`
	Nodes        int    `json:"nodes"`
	Edges        int    `json:"edges"`
	SkippedEdges int    `json:"skippedEdges" jsonschema:"edges not drawn because their nodes overlap"`
	Cached       bool   `json:"cached"`
}

// LayoutModelInput is the argument of layout_model.
type LayoutModelInput struct {
	Model   string `json:"model" jsonschema:"YAML class model"`
	RankDir string `json:"rankdir,omitempty" jsonschema:"layout direction: TB (default), LR, BT or RL"`
	Engine  string `json:"engine,omitempty" jsonschema:"Graphviz engine: dot (default), neato, fdp, circo or twopi"`
}

// LayoutModelOutput is the result of layout_model.
type LayoutModelOutput struct {
	Layout string `json:"layout"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
	Cached bool   `json:"cached"`
}

// Service holds the pipeline runner shared by the tool handlers.
type Service struct {
	runner *pipeline.Runner
}

// NewService creates a Service that runs every tool call through runner.
func NewService(runner *pipeline.Runner) *Service {
	return &Service{runner: runner}
}

// RenderDiagram renders a model or layout in a single format.
func (s *Service) RenderDiagram(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderDiagramInput,
) (*mcp.CallToolResult, RenderDiagramOutput, error) {
	format := input.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if format == pipeline.FormatPDF {
		return nil, RenderDiagramOutput{}, fmt.Errorf("pdf is not available over MCP; use svg or png")
	}

	settings := diagram.DefaultSettings()
	settings.Curviness = input.Curviness
	settings.Bezier = input.Bezier

	opts := pipeline.Options{
		Settings: settings,
		Formats:  []string{format},
		Graphviz: layout.Options{RankDir: input.RankDir},
	}
	if err := setInput(&opts, input.Model, input.Layout); err != nil {
		return nil, RenderDiagramOutput{}, err
	}

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		return nil, RenderDiagramOutput{}, err
	}

	out := RenderDiagramOutput{
		Format:       format,
		Encoding:     "utf-8",
		Nodes:        res.Stats.NodeCount,
		Edges:        res.Stats.EdgeCount,
		SkippedEdges: res.Stats.SkippedEdges,
		Cached:       res.CacheInfo.RenderHit,
	}
	data := res.Artifacts[format]
	if format == pipeline.FormatPNG {
		out.Encoding = "base64"
		out.Content = base64.StdEncoding.EncodeToString(data)
	} else {
		out.Content = string(data)
	}
	return nil, out, nil
}

// LayoutModel places a model and returns the layout JSON.
func (s *Service) LayoutModel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LayoutModelInput,
) (*mcp.CallToolResult, LayoutModelOutput, error) {
	if input.Model == "" {
		return nil, LayoutModelOutput{}, fmt.Errorf("model is required")
	}
	m, err := s.runner.ParseModel(ctx, []byte(input.Model))
	if err != nil {
		return nil, LayoutModelOutput{}, err
	}

	opts := pipeline.Options{Graphviz: layout.Options{Engine: input.Engine, RankDir: input.RankDir}}
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, LayoutModelOutput{}, err
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, LayoutModelOutput{}, err
	}
	return nil, LayoutModelOutput{
		Layout: string(data),
		Nodes:  len(l.Nodes),
		Edges:  len(l.Edges),
		Cached: hit,
	}, nil
}

func setInput(opts *pipeline.Options, model, layoutJSON string) error {
	switch {
	case model != "" && layoutJSON != "":
		return fmt.Errorf("pass either model or layout, not both")
	case model != "":
		return opts.SetInput([]byte(model), pipeline.InputModel)
	case layoutJSON != "":
		return opts.SetInput([]byte(layoutJSON), pipeline.InputLayout)
	default:
		return fmt.Errorf("model or layout is required")
	}
}
