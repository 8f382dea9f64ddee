package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"typo3update/internal/classmap"
	"typo3update/internal/diag"
	"typo3update/internal/rules/objectmanager"
	"typo3update/internal/sniff"
	"typo3update/internal/source"
	"typo3update/internal/testkit"
	"typo3update/internal/token"
)

// checkCreate прогоняет сниф по `$objectManager->create('Tx_Extbase_Foo');`
func checkCreate(t *testing.T, path string) (*source.FileSet, *diag.Bag) {
	t.Helper()
	b := testkit.MethodCall("create", "'Tx_Extbase_Foo'")
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, b.Stream())

	s := objectmanager.New(nil, classmap.New(map[string]string{"Tx_Extbase_Foo": `TYPO3\CMS\Extbase\Foo`}))
	bag := diag.NewBag(10)
	f := sniff.NewFile(id, path, fs.Get(id).Tokens, diag.BagReporter{Bag: bag}).For(s.Code())
	kinds := token.Set(s.Register())
	for pos, tok := range f.Tokens {
		if kinds.Has(tok.Kind) {
			s.Process(f, pos)
		}
	}
	bag.Sort()
	return fs, bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs, bag := checkCreate(t, "/home/user/project/src/Foo.php")
	fs.SetBaseDir("/home/user/project")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/Foo.php:2:"},
		{"Relative path", PathModeRelative, "src/Foo.php:2:"},
		{"Basename only", PathModeBasename, "Foo.php:2:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING mightBeDeprecatedMethod") {
				t.Error("Expected warning line in output")
			}
			if !strings.Contains(output, "ERROR legacyClassname: Legacy classes are not allowed") {
				t.Error("Expected error line in output")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "src/Foo.php", "src/Foo.php:2:"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/Foo.php", "\nFoo.php:2:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, bag := checkCreate(t, tt.path)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := "\n" + buf.String()
			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyFixesAndPreview(t *testing.T) {
	fs, bag := checkCreate(t, "Foo.php")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowFixes:   true,
		ShowPreview: true,
		ShowSummary: true,
		Qualified:   true,
	})
	output := buf.String()

	for _, want := range []string{
		"[fixable]",
		"Typo3Update.LegacyClassnames.InstantiationWithObjectManager.legacyClassname",
		`fix #1: Replace Tx_Extbase_Foo with TYPO3\CMS\Extbase\Foo [always-safe] id=legacyClassname-0-`,
		`apply="'TYPO3\\CMS\\Extbase\\Foo'" expect="'Tx_Extbase_Foo'"`,
		"- $objectManager->create('Tx_Extbase_Foo');",
		`+ $objectManager->create('TYPO3\CMS\Extbase\Foo');`,
		"1 error, 1 warning (1 fixable)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs, bag := checkCreate(t, "Foo.php")

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output contains escape codes:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escape codes:\n%q", colored.String())
	}
}

func TestSummaryLine(t *testing.T) {
	if got := summaryLine(Summary{}); got != "no problems found" {
		t.Fatalf("summaryLine = %q", got)
	}
	if got := summaryLine(Summary{Errors: 2, Warnings: 1, Fixable: 2}); got != "2 errors, 1 warning (2 fixable)" {
		t.Fatalf("summaryLine = %q", got)
	}
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs, bag := checkCreate(t, "Foo.php")

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeFixes: true, IncludePreviews: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", output.Count)
	}
	if output.Summary != (Summary{Errors: 1, Warnings: 1, Fixable: 1}) {
		t.Errorf("unexpected summary %+v", output.Summary)
	}

	warn, legacy := output.Diagnostics[0], output.Diagnostics[1]
	if warn.Severity != "WARNING" || warn.Code != "mightBeDeprecatedMethod" || warn.Fixable {
		t.Errorf("unexpected warning %+v", warn)
	}
	if len(warn.Data) != 1 || warn.Data[0] != "create" {
		t.Errorf("unexpected warning data %v", warn.Data)
	}
	if legacy.Source != objectmanager.Name+".legacyClassname" || !legacy.Fixable {
		t.Errorf("unexpected error %+v", legacy)
	}
	if legacy.Location.File != "Foo.php" || legacy.Location.Line != 2 || legacy.Location.Column != 24 {
		t.Errorf("unexpected location %+v", legacy.Location)
	}
	if len(legacy.Fixes) != 1 || len(legacy.Fixes[0].Edits) != 1 {
		t.Fatalf("expected one fix with one edit, got %+v", legacy.Fixes)
	}
	edit := legacy.Fixes[0].Edits[0]
	if edit.NewText != `'TYPO3\CMS\Extbase\Foo'` || edit.OldText != "'Tx_Extbase_Foo'" {
		t.Errorf("unexpected edit %+v", edit)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != `$objectManager->create('TYPO3\CMS\Extbase\Foo');` {
		t.Errorf("unexpected preview %v", edit.AfterLines)
	}
}

// TestJSONMax проверяет, что Max обрезает вывод, но не summary
func TestJSONMax(t *testing.T) {
	fs, bag := checkCreate(t, "Foo.php")
	out := BuildDiagnosticsOutput(bag.Items(), fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Summary.Errors+out.Summary.Warnings != 2 {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Diagnostics[0].Fixes != nil {
		t.Fatalf("fixes must be omitted unless requested")
	}
}

func TestSarif(t *testing.T) {
	fs, bag := checkCreate(t, "src/Foo.php")
	fs.SetBaseDir(".")

	var buf bytes.Buffer
	if err := Sarif(&buf, bag.Items(), fs, SarifRunMeta{ToolName: "typo3update", ToolVersion: "1.0.0"}); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log %+v", log)
	}
	run := log.Runs[0]
	if len(run.Results) != 2 || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("unexpected run %+v", run)
	}
	if run.Results[1].Level != "error" || run.Results[1].Locations[0].PhysicalLocation.Region.StartLine != 2 {
		t.Fatalf("unexpected result %+v", run.Results[1])
	}
}

func TestReportShort(t *testing.T) {
	fs, bag := checkCreate(t, "Foo.php")
	var buf bytes.Buffer
	if err := Report(&buf, bag.Items(), fs, ReportOpts{Format: FormatShort}); err != nil {
		t.Fatalf("Report: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "[fixable]") {
		t.Fatalf("unexpected short report:\n%s", buf.String())
	}
	if err := Report(&buf, nil, fs, ReportOpts{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseFormatAndPathMode(t *testing.T) {
	if f, err := ParseFormat(" JSON "); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
	if m, err := ParsePathMode("rel"); err != nil || m != PathModeRelative {
		t.Fatalf("ParsePathMode = %v, %v", m, err)
	}
}

func TestFormatTokens(t *testing.T) {
	s := testkit.MethodCall("get", "'Tx_Foo'").Stream()

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `T_CONSTANT_ENCAPSED_STRING`) || !strings.Contains(pretty.String(), `"'Tx_Foo'" at 2:21`) {
		t.Fatalf("unexpected listing:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, s); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != len(s) || out[3].Kind != "T_STRING" || out[3].Content != "get" {
		t.Fatalf("unexpected tokens %+v", out)
	}
}
