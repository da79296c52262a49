package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oddkernel/pkg/pipeline"
)

// configFile is the config file name inside the config directory.
const configFile = "config.toml"

// Config is the optional TOML configuration file. Command-line flags take
// precedence over every field.
type Config struct {
	Height   int         `toml:"height"`
	Identity string      `toml:"identity"`
	Cache    CacheConfig `toml:"cache"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Disabled  bool     `toml:"disabled"`
	Dir       string   `toml:"dir"`
	RedisURL  string   `toml:"redis_url"`
	Namespace string   `toml:"namespace"`
	TTL       Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string ("720h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// loadConfig reads the config file at path. An empty path reads the default
// location, where a missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// apply copies config values into opts for every flag the user did not set.
func (cfg *Config) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cfg.Height != 0 && !cmd.Flags().Changed("height") {
		opts.Height = cfg.Height
	}
	if cfg.Identity != "" && !cmd.Flags().Changed("identity") {
		opts.Identity = cfg.Identity
	}
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := configDir()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, configFile))
			return nil
		},
	})

	return cmd
}
