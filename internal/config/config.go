// Package config loads the interpreter's optional YAML configuration
// file (.interpreter.yaml, or a path given by --config), supplying
// default include paths and the recursion-depth limit. CLI flags always
// take precedence over file values — see Config.Override.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultMaxDepth mirrors runtime.NewGlobalContext's own "a few
// thousand" default (§5 Recursion) so a config file that omits
// max_depth doesn't silently disable the limit.
const DefaultMaxDepth = 4096

// DefaultFileName is the config file looked for next to the program
// being run when --config is not given.
const DefaultFileName = ".interpreter.yaml"

// Config is the on-disk shape of .interpreter.yaml.
type Config struct {
	Include  []string `yaml:"include"`
	MaxDepth int      `yaml:"max_depth"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{MaxDepth: DefaultMaxDepth}
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault looks for DefaultFileName in dir and loads it; a missing
// file is not an error — it returns Default() instead, since the config
// file is entirely optional (§10.3).
func LoadDefault(dir string) (*Config, error) {
	path := dir + string(os.PathSeparator) + DefaultFileName
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Override applies CLI flag values on top of c, returning a new Config.
// A flag only overrides when it was actually set by the caller (include
// non-empty, maxDepth > 0), so omitted flags keep the file's values.
func (c *Config) Override(include []string, maxDepth int) *Config {
	out := *c
	if len(include) > 0 {
		out.Include = append(append([]string(nil), c.Include...), include...)
	}
	if maxDepth > 0 {
		out.MaxDepth = maxDepth
	}
	return &out
}
