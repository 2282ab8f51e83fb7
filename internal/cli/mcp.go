package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlsvg/internal/mcptools"
)

// mcpCommand creates the mcp command. Stdout carries the protocol, so the
// command prints nothing and logs go to the CLI logger (stderr).
func (c *CLI) mcpCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP tool server on stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout.

Tools:
  render_diagram   render a YAML model or layout JSON to SVG, PNG or JSON
  layout_model     place a YAML model and return the layout JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.Logger.Debug("mcp server starting")
			return mcptools.Run(cmd.Context(), runner)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
