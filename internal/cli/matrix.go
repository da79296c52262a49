package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oddkernel/pkg/errors"
	"github.com/matzehuels/oddkernel/pkg/graph"
	"github.com/matzehuels/oddkernel/pkg/kernel"
	"github.com/matzehuels/oddkernel/pkg/pipeline"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// kernelFlags are the flags shared by every command that computes kernels.
type kernelFlags struct {
	height   int
	identity string
	noCache  bool
	refresh  bool
}

func (f *kernelFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.height, "height", "H", 0, "maximum subtree height (default unbounded)")
	cmd.Flags().StringVar(&f.identity, "identity", "", "subtree identity: string (default), hashed")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	_ = cmd.RegisterFlagCompletionFunc("identity", completeIdentity)
	cmd.ValidArgsFunction = completeCollections(2)
}

// options builds pipeline options from the flags and the config file.
func (f *kernelFlags) options(cmd *cobra.Command, cfg *Config, args []string) pipeline.Options {
	opts := pipeline.Options{
		XPath:    args[0],
		Height:   f.height,
		Identity: f.identity,
		Refresh:  f.refresh,
	}
	if len(args) > 1 {
		opts.YPath = args[1]
	}
	cfg.apply(cmd, &opts)
	return opts
}

// matrixCommand creates the matrix command.
func (c *CLI) matrixCommand() *cobra.Command {
	var (
		flags  kernelFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "matrix [graphs.json] [other.json]",
		Short: "Compute the kernel matrix of a graph collection",
		Long: `Compute the ODD-STh kernel matrix of a graph collection.

With one collection the result is the symmetric matrix of all pairs in it.
With a second collection every graph of the second is compared against every
graph of the first: rows follow the second collection, columns the first.

Results are cached by input content, height and identity strategy.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != outputTable && format != outputJSON {
				return errors.New(errors.ErrCodeInvalidInput, "invalid output format: %q (must be one of: table, json)", format)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			return c.runMatrix(cmd.Context(), cfg, flags.options(cmd, cfg, args), flags.noCache, format, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", outputTable, "output format: table, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to a file instead of stdout")

	return cmd
}

func (c *CLI) runMatrix(ctx context.Context, cfg *Config, opts pipeline.Options, noCache bool, format, output string) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, c.errOut, "Computing kernel matrix...")
	untrack := spinner.Track()
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	untrack()
	if err != nil {
		spinner.StopWithError("Kernel computation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Computed %dx%d kernel matrix", result.Matrix.Rows(), result.Matrix.Cols()))

	var data []byte
	switch format {
	case outputJSON:
		if data, err = json.MarshalIndent(result, "", "  "); err != nil {
			return err
		}
		data = append(data, '\n')
	default:
		rowNames := result.XNames
		if result.Cross() {
			rowNames = result.YNames
		}
		data = []byte(renderMatrix(result.Matrix, rowNames, result.XNames) + "\n")
	}

	if err := writeOutput(output, data); err != nil {
		return err
	}
	printStats(result.BigDAG.Nodes, result.BigDAG.Edges, result.CacheHit)
	if output != "" {
		printNextStep("Inspect the shared subtrees", fmt.Sprintf("%s bigdag %s -f svg -o bigdag.svg", appName, opts.XPath))
	}
	return c.flushMetrics()
}

// pairwiseCommand creates the pairwise command.
func (c *CLI) pairwiseCommand() *cobra.Command {
	var height int

	cmd := &cobra.Command{
		Use:   "pairwise [graphs.json] [a] [b]",
		Short: "Compute the kernel value of two graphs",
		Long: `Compute the ODD-STh kernel value of two graphs in a collection.

Graphs are selected by name, or by index when the argument is a number.`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeGraphs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if height == 0 {
				height = cfg.Height
			}
			if height == 0 {
				height = pipeline.DefaultHeight
			}
			return c.runPairwise(cmd, args[0], args[1], args[2], height)
		},
	}

	cmd.Flags().IntVarP(&height, "height", "H", 0, "maximum subtree height (default unbounded)")

	return cmd
}

func (c *CLI) runPairwise(cmd *cobra.Command, path, a, b string, height int) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	coll, err := runner.Load(cmd.Context(), path)
	if err != nil {
		return err
	}

	ga, err := selectGraph(coll, a)
	if err != nil {
		return err
	}
	gb, err := selectGraph(coll, b)
	if err != nil {
		return err
	}

	v, err := kernel.Pairwise(ga, gb, height)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
	return c.flushMetrics()
}

// selectGraph finds a graph by name, falling back to its index.
func selectGraph(coll *pipeline.Collection, ref string) (graph.Graph[int, string], error) {
	if i := slices.Index(coll.Names, ref); i >= 0 {
		return coll.Graphs[i], nil
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(coll.Graphs) {
		return coll.Graphs[i], nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "graph %q not found in %s", ref, coll.Path)
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
