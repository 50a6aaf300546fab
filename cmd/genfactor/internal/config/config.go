// Package config loads cmd/genfactor's optional YAML defaults file and
// its optional JSON-schema-validated value-function weight file. Neither
// exists in spec.md — both are SPEC_FULL.md §2.3/§3 ambient-stack
// additions, generalising the bare flags of spec.md §6.3 without removing
// them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults a user may set once in .genfactor.yaml instead
// of repeating on every invocation. Explicit CLI flags always win over
// these.
type Config struct {
	// Mode is one of "quick", "good", "bool", "kernel". Ignored if empty.
	Mode string `yaml:"mode"`
	// Format is one of "text", "cbor".
	Format string `yaml:"format"`
	// ValueConfig, if set, is the default --value-config path.
	ValueConfig string `yaml:"value_config"`
}

// Load reads and parses the YAML config at path. A missing file is not an
// error — it returns the zero Config, so callers can always merge flags
// over it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}
