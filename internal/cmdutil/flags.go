package cmdutil

import (
	"github.com/spf13/cobra"
)

// Flags holds the flag set every binary shares: -i/--input, -o/--output,
// --format, --cache-dir, --watch, --log-level and --config.
type Flags struct {
	Input    string
	Output   string
	Format   string
	CacheDir string
	Watch    bool
	LogLevel string
	Config   string
}

// Register binds Flags' fields to cmd's persistent flag set. defaultFormat
// is the engine-specific default output format (dot for BDD, text for
// DPLL, json for LTL). withCache enables --cache-dir (BDD and LTL only).
func Register(cmd *cobra.Command, defaultFormat string, withCache bool) *Flags {
	f := &Flags{}
	cmd.PersistentFlags().StringVarP(&f.Input, "input", "i", "", "input file (default: stdin)")
	cmd.PersistentFlags().StringVarP(&f.Output, "output", "o", "", "output file (default: stdout)")
	cmd.PersistentFlags().StringVar(&f.Format, "format", defaultFormat, "output format")
	cmd.PersistentFlags().BoolVar(&f.Watch, "watch", false, "re-run on input file change")
	cmd.PersistentFlags().StringVar(&f.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&f.Config, "config", DefaultConfigPath(), "config file path")
	if withCache {
		cmd.PersistentFlags().StringVar(&f.CacheDir, "cache-dir", "", "persistent cache directory")
	}
	return f
}

// Resolve layers cmd's explicitly-set flags over engine's ~/.logicforge.yaml
// section, flags winning on every field the user actually passed.
func Resolve(cmd *cobra.Command, f *Flags, engine string) (*Flags, error) {
	cfg, err := LoadConfig(f.Config)
	if err != nil {
		return nil, err
	}
	ec := cfg.ForEngine(engine)

	resolved := *f
	if !cmd.Flags().Changed("format") && ec.Format != "" {
		resolved.Format = ec.Format
	}
	if !cmd.Flags().Changed("cache-dir") && ec.CacheDir != "" {
		resolved.CacheDir = ec.CacheDir
	}
	if !cmd.Flags().Changed("log-level") && ec.LogLevel != "" {
		resolved.LogLevel = ec.LogLevel
	}
	if !cmd.Flags().Changed("watch") && ec.Watch {
		resolved.Watch = true
	}
	return &resolved, nil
}
