// Package cmdutil holds the flag wiring, config layering, logging setup,
// and output encoding shared by cmd/bdd, cmd/dpll and cmd/ltl. Grounded on
// cli/main.go's cobra root command (PersistentFlags bound to local vars,
// structured error printing) and the logging pattern shown in
// runtime/lexer.New (slog.NewTextHandler with a level-from-flag
// HandlerOptions).
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EngineConfig is one engine's section of ~/.logicforge.yaml.
type EngineConfig struct {
	Format   string `yaml:"format"`
	CacheDir string `yaml:"cache_dir"`
	LogLevel string `yaml:"log_level"`
	Watch    bool   `yaml:"watch"`
}

// Config is the full ~/.logicforge.yaml document: global defaults plus an
// optional per-engine override section, layering CLI flags over a YAML
// config file.
type Config struct {
	EngineConfig `yaml:",inline"`
	Engines      map[string]EngineConfig `yaml:"engines"`
}

// DefaultConfigPath returns ~/.logicforge.yaml, or "" if $HOME is unset.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".logicforge.yaml")
}

// LoadConfig reads and parses path. A missing file is not an error — it
// simply yields a zero-value Config so every engine can load
// unconditionally whether or not the user has ever created one.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("cmdutil: read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("cmdutil: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ForEngine merges the global config section under an engine-specific
// override, so e.g. `engines.ltl.format` wins over the top-level `format`.
func (c Config) ForEngine(name string) EngineConfig {
	merged := c.EngineConfig
	override, ok := c.Engines[name]
	if !ok {
		return merged
	}
	if override.Format != "" {
		merged.Format = override.Format
	}
	if override.CacheDir != "" {
		merged.CacheDir = override.CacheDir
	}
	if override.LogLevel != "" {
		merged.LogLevel = override.LogLevel
	}
	if override.Watch {
		merged.Watch = true
	}
	return merged
}
