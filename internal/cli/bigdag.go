package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oddkernel/pkg/pipeline"
)

// bigdagCommand creates the bigdag command for inspecting the shared subtree DAG.
func (c *CLI) bigdagCommand() *cobra.Command {
	var (
		flags  kernelFlags
		output string
	)
	opts := pipeline.Options{Format: pipeline.DefaultFormat}

	cmd := &cobra.Command{
		Use:   "bigdag [graphs.json] [other.json]",
		Short: "Export the Big DAG of a graph collection",
		Long: `Export the Big DAG of one or two graph collections.

The Big DAG holds every distinct rooted subtree of the input graphs once,
with its depth weight and one frequency per graph. It is written as
Graphviz DOT (default), rendered SVG, or JSON.

Use --detailed to include weights and frequencies in node labels and
--max-nodes to cap the size of large exports.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.Format); err != nil {
				return err
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			base := flags.options(cmd, cfg, args)
			base.Format = opts.Format
			base.Detailed = opts.Detailed
			base.MaxNodes = opts.MaxNodes
			return c.runBigDAG(cmd.Context(), cfg, base, flags.noCache, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "output format: dot (default), svg, json")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show weights and frequencies in node labels")
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", 0, "export at most this many nodes (0 = all)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]cobra.Completion{pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatJSON},
		cobra.ShellCompDirectiveNoFileComp,
	))

	return cmd
}

func (c *CLI) runBigDAG(ctx context.Context, cfg *Config, opts pipeline.Options, noCache bool, output string) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := newSpinner(ctx, c.errOut, fmt.Sprintf("Rendering Big DAG as %s...", opts.Format))
	untrack := spinner.Track()
	spinner.Start()

	out, err := runner.RenderBigDAG(ctx, opts)
	untrack()
	if err != nil {
		spinner.StopWithError("Big DAG export failed")
		return err
	}
	spinner.Stop()

	if err := writeOutput(output, out.Data); err != nil {
		return err
	}
	if output != "" {
		printStats(out.BigDAG.Nodes, out.BigDAG.Edges, out.CacheHit)
		printKeyValue("sources", fmt.Sprint(out.BigDAG.Sources))
		printKeyValue("max weight", fmt.Sprint(out.BigDAG.MaxWeight))
	}
	return c.flushMetrics()
}
