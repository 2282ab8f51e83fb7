package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/umlsvg/pkg/config"
	errs "github.com/matzehuels/umlsvg/pkg/errors"
	"github.com/matzehuels/umlsvg/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// Zero values leave the config file setting in place.
type renderOpts struct {
	output   string  // output file (single input/format) or base path / directory
	formats  string  // comma-separated output formats
	noCache  bool    // disable caching
	noEdges  bool    // draw classes and packages only
	scale    float64 // PNG pixel density
	jobs     int     // concurrent inputs
	rankDir  string  // Graphviz rank direction for models
	engine   string  // Graphviz engine for models
	settings config.RenderConfig
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <model.yaml|layout.json>...",
		Short: "Render class models or layout files to SVG, PNG, PDF or JSON",
		Long: `Render class models or layout files.

YAML inputs are class models and are placed with Graphviz first; JSON inputs are
layouts produced by 'layout' (or written by hand) and are drawn as they are.

With a single input and a single format, -o names the output file. Otherwise
outputs are written next to each input, or into the directory given by -o, as
<input name>.<format>. An -o with a format extension is a base path; with
several inputs each file is named <base>-<input name>.<format>.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd, args, formats, &opts)
		},
	}

	d := config.Default().Render
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory for several outputs")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.noEdges, "no-edges", false, "do not draw relations")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "inputs rendered concurrently")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "layout direction for models: TB, LR, BT, RL")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "Graphviz engine for models: dot, neato, fdp, circo, twopi")
	cmd.Flags().Float64Var(&opts.settings.Curviness, "curviness", d.Curviness, "edge rounding in [0,1]; 0 draws straight polylines")
	cmd.Flags().BoolVar(&opts.settings.Bezier, "bezier", false, "interpolate bends with cubic Bezier curves")
	cmd.Flags().Float64Var(&opts.settings.Margin, "margin", d.Margin, "margin around the drawing")
	cmd.Flags().Float64Var(&opts.settings.FontSize, "font-size", d.FontSize, "label font size")
	cmd.Flags().StringVar(&opts.settings.Width, "width", "", "document width attribute (e.g. 800px, 100%)")
	cmd.Flags().StringVar(&opts.settings.Height, "height", "", "document height attribute")

	return cmd
}

// applyRenderFlags overlays the flags the user set on the config file values.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, opts *renderOpts) {
	f := cmd.Flags()
	r := &cfg.Render
	if f.Changed("curviness") {
		r.Curviness = opts.settings.Curviness
	}
	if f.Changed("bezier") {
		r.Bezier = opts.settings.Bezier
	}
	if f.Changed("margin") {
		r.Margin = opts.settings.Margin
	}
	if f.Changed("font-size") {
		r.FontSize = opts.settings.FontSize
	}
	if f.Changed("width") {
		r.Width = opts.settings.Width
	}
	if f.Changed("height") {
		r.Height = opts.settings.Height
	}
	if opts.noEdges {
		r.Edges = false
	}
	if opts.rankDir != "" {
		cfg.Layout.RankDir = opts.rankDir
	}
	if opts.engine != "" {
		cfg.Layout.Engine = opts.engine
	}
}

// runRender renders every input, up to opts.jobs at a time.
func (c *CLI) runRender(cmd *cobra.Command, inputs, formats []string, opts *renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyRenderFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	plan, err := outputPaths(opts.output, inputs, formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)

	var (
		mu      sync.Mutex
		written []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.jobs, 1))
	for _, input := range inputs {
		g.Go(func() error {
			paths, err := c.renderOne(gctx, runner, cfg, input, formats, plan[input], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			mu.Lock()
			written = append(written, paths...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(written)))
	printSuccess("Render complete")
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// renderOne runs the pipeline for one input and writes its artifacts.
func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, cfg *config.Config, input string, formats, outputs []string, opts *renderOpts) ([]string, error) {
	popts := pipeline.Options{
		Graphviz: cfg.LayoutOptions(),
		Settings: cfg.Settings(),
		Formats:  formats,
		Scale:    opts.scale,
		NoEdges:  !cfg.Render.Edges,
		Logger:   c.Logger,
	}
	if err := popts.LoadInput(input); err != nil {
		return nil, err
	}

	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("rendered",
		"input", input,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"layout_cached", res.CacheInfo.LayoutHit,
		"render_cached", res.CacheInfo.RenderHit)
	if res.Stats.SkippedEdges > 0 {
		printWarning("%s: %d relation(s) not drawn, their classes overlap", input, res.Stats.SkippedEdges)
	}

	var paths []string
	for i, format := range formats {
		path := outputs[i]
		if err := writeOutput(path, res.Artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath names the file for one artifact. With one input and one format
// the -o value is used verbatim. Otherwise -o is a directory, or a base path
// carrying a format extension whose stem is combined with the input name
// when there are several inputs.
func outputPath(output, input, format string, inputs, formats int) string {
	if inputs == 1 && formats == 1 && output != "" {
		return output
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	ext := filepath.Ext(output)
	switch {
	case output == "":
		return filepath.Join(filepath.Dir(input), stem+"."+format)
	case pipeline.ValidFormats[strings.TrimPrefix(ext, ".")]:
		base := strings.TrimSuffix(output, ext)
		if inputs > 1 {
			base += "-" + stem
		}
		return base + "." + format
	default:
		return filepath.Join(output, stem+"."+format)
	}
}

// outputPaths plans every output file up front and rejects plans where two
// artifacts would be written to the same path.
func outputPaths(output string, inputs, formats []string) (map[string][]string, error) {
	plan := make(map[string][]string, len(inputs))
	owner := make(map[string]string)
	for _, input := range inputs {
		for _, format := range formats {
			path := outputPath(output, input, format, len(inputs), len(formats))
			if prev, ok := owner[path]; ok {
				return nil, errs.New(errs.ErrCodeInvalidInput,
					"%s and %s would both be written to %s", prev, input, path)
			}
			owner[path] = input
			plan[input] = append(plan[input], path)
		}
	}
	return plan, nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
