// Package config loads typo3update.toml, the per-project settings file found
// by walking up from the checked path.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the settings file looked up by Find.
const FileName = "typo3update.toml"

// ErrNotFound is returned by Discover when no settings file exists up to the
// filesystem root.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config mirrors typo3update.toml.
type Config struct {
	Classmap Classmap `toml:"classmap"`
	Report   Report   `toml:"report"`
	Runner   Runner   `toml:"runner"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type Classmap struct {
	// File is a YAML or TOML mapping of legacy to modern class names,
	// relative to the config file.
	File string `toml:"file"`
	// NoDefault drops the built-in mapping instead of merging over it.
	NoDefault bool `toml:"no-default"`
	// NoCache disables the parsed mapping cache.
	NoCache bool `toml:"no-cache"`
}

type Report struct {
	Format         string `toml:"format"`
	Paths          string `toml:"paths"`
	MaxDiagnostics int    `toml:"max-diagnostics"`
}

type Runner struct {
	Jobs int `toml:"jobs"`
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{
		Report: Report{Format: "pretty", Paths: "auto", MaxDiagnostics: 500},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Report.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [report].max-diagnostics must not be negative", path)
	}
	if cfg.Runner.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [runner].jobs must not be negative", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover finds and loads the config governing startDir.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), ErrNotFound
	}
	return Load(path)
}

// ClassmapPath resolves Classmap.File against the config location.
func (c Config) ClassmapPath() string {
	file := strings.TrimSpace(c.Classmap.File)
	if file == "" || filepath.IsAbs(file) || c.Path == "" {
		return file
	}
	return filepath.Join(filepath.Dir(c.Path), filepath.FromSlash(file))
}
