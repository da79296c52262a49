package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oddkernel/pkg/buildinfo"
	"github.com/matzehuels/oddkernel/pkg/observability"
	"github.com/matzehuels/oddkernel/pkg/observability/prom"
	"github.com/matzehuels/oddkernel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "oddkernel"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// errOut receives progress output such as the spinner.
	errOut io.Writer

	// configPath overrides the default config file location.
	configPath string
	// metricsPath, when set, receives a Prometheus text dump after each run.
	metricsPath string
	verbose     bool
	registry    *prometheus.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	out := &lockedWriter{w: w}
	return &CLI{
		Logger: newLogger(out, level),
		errOut: out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "oddkernel compares labeled graphs with the ODD-STh subtree kernel",
		Long:          `oddkernel computes ODD-STh graph kernels: it decomposes every graph into rooted subtrees, deduplicates them across a collection, and reports pairwise similarities as a kernel matrix.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.enableMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/oddkernel/config.toml)")
	root.PersistentFlags().StringVar(&c.metricsPath, "metrics", "", "write Prometheus metrics to this file after the run")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.matrixCommand())
	root.AddCommand(c.pairwiseCommand())
	root.AddCommand(c.bigdagCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, backed by the cache the
// config selects.
func (c *CLI) newRunner(cfg *Config, noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cache, newKeyer(cfg), c.Logger)
	if cfg.Cache.TTL.Duration > 0 {
		r.TTL = cfg.Cache.TTL.Duration
	}
	return r, nil
}

// =============================================================================
// Metrics
// =============================================================================

// enableMetrics installs Prometheus hooks when --metrics is set.
func (c *CLI) enableMetrics() error {
	if c.metricsPath == "" || c.registry != nil {
		return nil
	}
	c.registry = prometheus.NewRegistry()
	m := prom.New(c.registry)
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	return nil
}

// flushMetrics writes collected metrics in the node-exporter textfile format.
func (c *CLI) flushMetrics() error {
	if c.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.metricsPath, c.registry); err != nil {
		return err
	}
	printFile(c.metricsPath)
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/oddkernel/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/oddkernel/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
