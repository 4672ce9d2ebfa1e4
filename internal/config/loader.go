package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a configuration file. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadFromTOML(data)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadFromTOML parses configuration from raw TOML bytes.
func LoadFromTOML(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing toml config: %w", err)
	}
	return &cfg, nil
}

// ParseOverrides builds a Config from "key=value" pairs, e.g.
// "tag-prefix=release-". Values are decoded with the YAML rules, so enums
// and numbers work the same as in a config file.
func ParseOverrides(pairs []string) (*Config, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	doc := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q: expected key=value", pair)
		}
		doc[key] = strings.TrimSpace(value)
	}

	var b strings.Builder
	for key, value := range doc {
		node := yaml.Node{Kind: yaml.ScalarNode, Value: value}
		encoded, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("encoding override %q: %w", key, err)
		}
		fmt.Fprintf(&b, "%s: %s", key, encoded)
	}

	cfg, err := LoadFromBytes([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("applying overrides: %w", err)
	}
	return cfg, nil
}
