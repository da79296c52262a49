package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oddkernel/pkg/cache"
	"github.com/matzehuels/oddkernel/pkg/errors"
)

// newCache selects the result cache: Redis when a URL is configured, the
// local file cache otherwise, and a null cache when caching is off.
func newCache(cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		c, err := cache.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return c, nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			printWarning("No cache directory (%v), caching disabled", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newKeyer returns the default keyer, scoped to the configured namespace.
func newKeyer(cfg *Config) cache.Keyer {
	k := cache.NewDefaultKeyer()
	if ns := cfg.Cache.Namespace; ns != "" {
		if !strings.HasSuffix(ns, ":") {
			ns += ":"
		}
		k = cache.NewScopedKeyer(k, ns)
	}
	return k
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached kernel results",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// localCacheDir returns the file cache directory from the config or XDG.
func (c *CLI) localCacheDir() (string, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheClearCommand creates the "cache clear" subcommand. It clears whichever
// backend the config selects, so Redis entries can be dropped as well.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var keyType string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached kernel matrices and Big DAG renderings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyType != "" {
				if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "type", keyType, cache.KeyTypes...); err != nil {
					return err
				}
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			store, err := newCache(cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "cache backend %T cannot be cleared", store)
			}
			n, err := clearer.Clear(cmd.Context(), keyType)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			what := "cached entries"
			if keyType != "" {
				what = "cached " + keyType + " entries"
			}
			if n == 0 {
				printInfo("No %s to clear", what)
			} else {
				printSuccess("Cleared %d %s", n, what)
			}
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyType, "type", "", "only clear entries of this type: "+strings.Join(cache.KeyTypes, ", "))
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(cache.KeyTypes, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count entries in the local cache by type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.localCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			store, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			counts, err := store.(*cache.FileCache).Count()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range cache.KeyTypes {
				fmt.Fprintf(out, "%s\t%d\n", t, counts[t])
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.localCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
