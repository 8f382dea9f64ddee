package classmap

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultMapping []byte

type document struct {
	Classes map[string]string `yaml:"classes" toml:"classes"`
}

// Load parses a mapping file; the decoder is chosen by extension.
func Load(path string) (*Map, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes mapping data. ext is ".yaml", ".yml" or ".toml".
func Parse(data []byte, ext string) (*Map, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unsupported mapping format %q (expected .yaml, .yml or .toml)", ext)
	}
	if doc.Classes == nil {
		return nil, fmt.Errorf("missing classes table")
	}
	return New(doc.Classes), nil
}

// Default returns the built-in Extbase/Fluid/core sample mapping.
func Default() *Map {
	m, err := Parse(defaultMapping, ".yaml")
	if err != nil {
		panic(fmt.Errorf("embedded default mapping: %w", err))
	}
	return m
}
