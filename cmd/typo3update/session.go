package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"typo3update/internal/classmap"
	"typo3update/internal/config"
	"typo3update/internal/diagfmt"
	"typo3update/internal/observ"
	"typo3update/internal/rules/objectmanager"
	"typo3update/internal/runner"
	"typo3update/internal/sniff"
	"typo3update/internal/source"
	"typo3update/internal/tokfile"
	"typo3update/internal/trace"
)

// settings is the merged view of typo3update.toml and command-line flags.
type settings struct {
	cfg            config.Config
	classes        *classmap.Map
	format         diagfmt.Format
	paths          diagfmt.PathMode
	maxDiagnostics int
	jobs           int
	color          bool
	quiet          bool
	ui             uiMode
	// timer is nil unless --timings is set.
	timer *observ.Timer
}

// resolveSettings loads the config governing target and applies flag overrides.
func resolveSettings(cmd *cobra.Command, target string) (settings, error) {
	root := cmd.Root().PersistentFlags()

	var timer *observ.Timer
	if timings, _ := root.GetBool("timings"); timings {
		timer = observ.NewTimer()
	}
	done := timer.Start("settings")

	configPath, err := root.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath, target)
	if err != nil {
		return settings{}, err
	}

	if root.Changed("max-diagnostics") {
		if cfg.Report.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return settings{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Report.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("paths") != nil && flags.Changed("paths") {
		cfg.Report.Paths, _ = flags.GetString("paths")
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		cfg.Runner.Jobs, _ = flags.GetInt("jobs")
	}

	s := settings{cfg: cfg, maxDiagnostics: cfg.Report.MaxDiagnostics, jobs: cfg.Runner.Jobs, timer: timer}
	if s.format, err = diagfmt.ParseFormat(cfg.Report.Format); err != nil {
		return settings{}, err
	}
	if s.paths, err = diagfmt.ParsePathMode(cfg.Report.Paths); err != nil {
		return settings{}, err
	}

	colorFlag, _ := root.GetString("color")
	if s.color, err = readColor(colorFlag); err != nil {
		return settings{}, err
	}
	s.quiet, _ = root.GetBool("quiet")
	uiFlag, _ := root.GetString("ui")
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return settings{}, err
	}

	if s.classes, err = loadClassmap(cmd.Context(), cmd.ErrOrStderr(), cfg); err != nil {
		return settings{}, err
	}
	done(cfg.Path)
	return s, nil
}

// loadConfig reads an explicit config file or discovers one from target.
// A missing file means defaults.
func loadConfig(explicit, target string) (config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	cfg, err := config.Discover(target)
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), nil
	}
	return cfg, err
}

// loadClassmap merges the configured mapping over the built-in one.
// A cache failure is reported on warn and otherwise ignored.
func loadClassmap(ctx context.Context, warn io.Writer, cfg config.Config) (*classmap.Map, error) {
	base := classmap.Default()
	if cfg.Classmap.NoDefault {
		base = classmap.New(nil)
	}
	path := cfg.ClassmapPath()
	if path == "" {
		return base, nil
	}

	_, span := trace.StartSpan(ctx, trace.ScopeCommand, "classmap")
	defer span.End(path)

	var cache *classmap.Cache
	if !cfg.Classmap.NoCache {
		c, err := classmap.OpenCache("typo3update")
		if err != nil {
			fmt.Fprintf(warn, "warning: classmap cache disabled: %v\n", err)
		} else {
			cache = c
		}
	}
	m, err := classmap.LoadCached(cache, path)
	if m == nil {
		return nil, fmt.Errorf("classmap: %w", err)
	}
	if err != nil {
		fmt.Fprintf(warn, "warning: %v\n", err)
	}
	span.WithExtra("classes", fmt.Sprint(m.Len()))
	return base.Merge(m), nil
}

// sniffFactory builds a fresh rule set per file.
func sniffFactory(classes *classmap.Map) runner.Factory {
	return func() []sniff.Sniff {
		return []sniff.Sniff{objectmanager.New(nil, classes)}
	}
}

// collectTargets expands target into a base directory and dump files.
func collectTargets(target string) (string, []string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", nil, err
	}
	if info.IsDir() {
		files, err := runner.ListDumps(target)
		if err != nil {
			return "", nil, err
		}
		return target, files, nil
	}
	if !tokfile.IsDump(target) {
		return "", nil, fmt.Errorf("%s: not a token dump (want *%s or *%s)", target, tokfile.JSONSuffix, tokfile.MsgpackSuffix)
	}
	return filepath.Dir(target), []string{target}, nil
}

// process runs the sniffs over files, with the progress UI when it applies.
func process(ctx context.Context, title string, s settings, baseDir string, files []string) (*source.FileSet, []*runner.Result, error) {
	factory := sniffFactory(s.classes)
	opts := runner.Options{MaxDiagnostics: s.maxDiagnostics, Jobs: s.jobs}
	done := s.timer.Start("sniff")
	defer done(fmt.Sprintf("%d file(s)", len(files)))
	if !s.quiet && s.format == diagfmt.FormatPretty && shouldUseTUI(s.ui, len(files)) {
		return runWithUI(ctx, title, factory, opts, baseDir, files)
	}
	return runner.New(factory, opts).ProcessFiles(ctx, baseDir, files)
}

// printTimings writes the phase summary when --timings is set.
func printTimings(w io.Writer, s settings) {
	if err := s.timer.WriteSummary(w); err != nil {
		fmt.Fprintf(w, "timings: %v\n", err)
	}
}

// reportLoadErrors prints files that could not be read; it returns their count.
func reportLoadErrors(w io.Writer, results []*runner.Result) int {
	n := 0
	for _, res := range results {
		if res != nil && res.Err != nil {
			fmt.Fprintf(w, "error: %s: %v\n", res.Path, res.Err)
			n++
		}
	}
	return n
}
