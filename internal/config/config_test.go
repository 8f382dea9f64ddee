package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[classmap]
file = "maps/legacy.yaml"

[report]
format = "json"

[runner]
jobs = 3
`)
	nested := filepath.Join(root, "ext", "news", "Classes")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Report.Format != "json" || cfg.Runner.Jobs != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Report.MaxDiagnostics != 500 || cfg.Report.Paths != "auto" {
		t.Fatalf("defaults not kept: %+v", cfg.Report)
	}
	want := filepath.Join(root, "maps", "legacy.yaml")
	if got := cfg.ClassmapPath(); got != want {
		t.Fatalf("ClassmapPath = %q, want %q", got, want)
	}
}

func TestDiscover_FromFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[runner]\njobs = 1\n")
	dump := filepath.Join(root, "Foo.php.tokens.json")
	writeFile(t, dump, "{}")

	path, ok, err := Find(dump)
	if err != nil || !ok || path != filepath.Join(root, FileName) {
		t.Fatalf("Find = %q, %v, %v", path, ok, err)
	}
}

func TestDiscover_NotFound(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		// a typo3update.toml above the temp dir would break this test
		if err == nil {
			t.Skip("a config file exists above the temp dir")
		}
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if cfg.Report.Format != "pretty" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown key": "[report]\ncolour = true\n",
		"bad toml":    "[report\n",
		"negative":    "[runner]\njobs = -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".toml")
			writeFile(t, path, content)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %q", content)
			}
		})
	}
}

func TestClassmapPath(t *testing.T) {
	if got := (Config{}).ClassmapPath(); got != "" {
		t.Fatalf("empty file must stay empty, got %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "etc", "map.yaml")
	if got := (Config{Path: "/x/typo3update.toml", Classmap: Classmap{File: abs}}).ClassmapPath(); got != abs {
		t.Fatalf("absolute path changed: %q", got)
	}
}
