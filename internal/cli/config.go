package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beltprio/pkg/errors"
	"github.com/matzehuels/beltprio/pkg/pipeline"
)

// Config is the file configuration. Flags override every value.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Serve  ServeConfig  `toml:"serve"`
	Render RenderConfig `toml:"render"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn" or "error"
}

// OutputConfig configures what prioritize writes.
type OutputConfig struct {
	Format string `toml:"format"` // "json", "yaml", "toml" or "blueprint"; empty keeps the input format
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// RenderConfig configures diagrams.
type RenderConfig struct {
	Format   string `toml:"format"`
	Detailed bool   `toml:"detailed"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Serve:  ServeConfig{Addr: "127.0.0.1:8080"},
		Render: RenderConfig{Format: pipeline.FormatSVG},
	}
}

// configPath returns the default config file location using the XDG
// standard (~/.config/beltprio/config.toml).
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config at path, or at the default location when path
// is empty. A missing default file yields DefaultConfig; a missing explicit
// file is an error. Keys absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log.level")
	}
	if c.Output.Format != "" {
		if err := pipeline.ValidateOutputFormat(c.Output.Format); err != nil {
			return fmt.Errorf("output.format: %w", err)
		}
	}
	if err := pipeline.ValidateRenderFormat(c.Render.Format); err != nil {
		return fmt.Errorf("render.format: %w", err)
	}
	return nil
}

func (c Config) logLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return LogInfo
	}
	return level
}

// configCommand creates the config command for inspecting configuration.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(c.stdout()).Encode(c.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := configPath()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(c.stdout(), path)
			return nil
		},
	})

	return cmd
}
