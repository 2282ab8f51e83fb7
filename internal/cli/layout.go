package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/pipeline"
)

// layoutCommand creates the layout command for placing class models.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		rankDir string
		engine  string
	)

	cmd := &cobra.Command{
		Use:   "layout <model.yaml>",
		Short: "Place a class model and write the layout JSON",
		Long: `Place a class model with Graphviz.

The output is a layout JSON file (same format as 'render -f json') holding class
boxes, relation bend points and package rectangles. It can be edited by hand and
rendered with 'render'.

Results are cached, so re-running on an unchanged model is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if rankDir != "" {
				cfg.Layout.RankDir = rankDir
			}
			if engine != "" {
				cfg.Layout.Engine = engine
			}
			opts := pipeline.Options{
				Graphviz: cfg.LayoutOptions(),
				Settings: cfg.Settings(),
				Refresh:  refresh,
				Logger:   c.Logger,
			}
			if output == "" {
				output = layoutPath(args[0])
			}
			return c.runLayout(cmd.Context(), args[0], output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().StringVar(&rankDir, "rankdir", "", "layout direction: TB, LR, BT, RL")
	cmd.Flags().StringVar(&engine, "engine", "", "Graphviz engine: dot, neato, fdp, circo, twopi")

	return cmd
}

// runLayout parses the model, places it and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read model %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m, err := runner.ParseModel(ctx, data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, os.Stderr, "Placing "+filepath.Base(input)+"...")
	spinner.Start()
	l, cached, err := runner.ComputeLayoutWithCacheInfo(ctx, m, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := graph.WriteLayoutFile(l, output); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	printSuccess("Layout computed")
	printStats(len(l.Nodes), len(l.Edges), cached)
	printFile(output)
	printNextStep("Render with", "umlsvg render "+output)
	return nil
}

// layoutPath derives the default layout file name from a model path.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
