// Package pipeline runs the model → layout → render chain behind the CLI, the
// HTTP service and the MCP tools.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Model: decode a YAML class model (skipped when a placed layout is given)
//  2. Layout: turn the model into a graph and place it with Graphviz
//  3. Render: draw the layout and encode it as SVG, PNG, PDF or JSON
//
// Layouts and artifacts are cached by content hash, so rerunning an
// unchanged model with unchanged settings does no work.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Model:   modelYAML,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.ComputeLayout(ctx, model, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlsvg/pkg/cache"
	errs "github.com/matzehuels/umlsvg/pkg/errors"
	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/layout"
	"github.com/matzehuels/umlsvg/pkg/render/diagram"
	"github.com/matzehuels/umlsvg/pkg/render/sink"
	"github.com/matzehuels/umlsvg/pkg/uml"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. Exactly one of
// Model and Layout must be set.
type Options struct {
	// Input
	Model  []byte        `json:"model,omitempty"`  // YAML class model
	Layout *graph.Layout `json:"layout,omitempty"` // already placed layout

	// Layout options, used only for models
	Graphviz layout.Options `json:"-"`

	// Render options
	Settings diagram.Settings `json:"settings"`
	Formats  []string         `json:"formats,omitempty"`
	Scale    float64          `json:"scale,omitempty"` // PNG pixel density
	NoEdges  bool             `json:"no_edges,omitempty"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the decoded class model, nil for layout input.
	Model *uml.Model

	// Layout is the placed layout that was rendered.
	Layout graph.Layout

	// LayoutHash is the content hash of the layout JSON.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ClusterCount int
	SkippedEdges int // edges dropped because their nodes overlap
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the input and applies defaults for the full
// pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	switch {
	case o.Model == nil && o.Layout == nil:
		return errs.New(errs.ErrCodeInvalidInput, "model or layout is required")
	case o.Model != nil && o.Layout != nil:
		return errs.New(errs.ErrCodeInvalidInput, "model and layout are mutually exclusive")
	}
	if o.Model != nil {
		if err := o.ValidateForLayout(); err != nil {
			return err
		}
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset Graphviz options.
func (o *Options) SetLayoutDefaults() {
	o.Graphviz = o.Graphviz.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Render defaults are applied too since node sizes follow the font size.
func (o *Options) ValidateForLayout() error {
	o.SetRenderDefaults()
	o.SetLayoutDefaults()
	if err := o.Graphviz.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "layout options")
	}
	return nil
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Settings == (diagram.Settings{}) {
		o.Settings = diagram.DefaultSettings()
	}
	if o.Settings.FontSize == 0 {
		o.Settings.FontSize = diagram.DefaultFontSize
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Settings.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "render settings")
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be > 0, got %g", o.Scale)
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Engine:        o.Graphviz.Engine,
		RankDir:       o.Graphviz.RankDir,
		NodeDistance:  o.Graphviz.NodeDistance,
		LayerDistance: o.Graphviz.LayerDistance,
		FontSize:      o.Settings.FontSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// JSON artifacts do not depend on the render settings.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	type keyed struct {
		Settings *diagram.Settings `json:"settings,omitempty"`
		NoEdges  bool              `json:"no_edges"`
	}
	k := keyed{NoEdges: o.NoEdges}
	if format != FormatJSON {
		k.Settings = &o.Settings
	}
	opts := cache.ArtifactKeyOpts{Format: format, Settings: k}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
