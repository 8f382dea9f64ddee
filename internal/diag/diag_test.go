package diag

import (
	"errors"
	"testing"

	"typo3update/internal/source"
	"typo3update/internal/token"
)

func TestBag_LimitAndCounts(t *testing.T) {
	b := NewBag(2)
	d1 := NewWarning(MightBeDeprecatedMethod, source.Pos{Token: 3}, "w")
	d2 := NewError(LegacyClassname, source.Pos{Token: 5}, "e").WithFix("fix", TokenEdit{Pos: source.Pos{Token: 5}, NewText: "'X'"})
	d3 := NewError(LegacyClassname, source.Pos{Token: 9}, "e")
	if !b.Add(&d1) || !b.Add(&d2) {
		t.Fatalf("first two adds must succeed")
	}
	if b.Add(&d3) {
		t.Fatalf("third add must be rejected by the limit")
	}
	if b.Dropped() != 1 {
		t.Fatalf("Dropped() = %d, want 1", b.Dropped())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("HasErrors/HasWarnings wrong")
	}
	if b.Count(SevWarning) != 1 || b.Count(SevError) != 1 || b.Fixable() != 1 {
		t.Fatalf("counts: warn=%d err=%d fixable=%d", b.Count(SevWarning), b.Count(SevError), b.Fixable())
	}
}

func TestBag_SortAndDedup(t *testing.T) {
	b := NewBag(10)
	for _, d := range []Diagnostic{
		NewError(LegacyClassname, source.Pos{File: 1, Token: 2}, "b"),
		NewWarning(MightBeDeprecatedMethod, source.Pos{File: 0, Token: 7}, "a"),
		NewError(LegacyClassname, source.Pos{File: 0, Token: 7}, "c"),
		NewError(LegacyClassname, source.Pos{File: 0, Token: 7}, "c"),
	} {
		b.Add(&d)
	}
	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError || items[2].Severity != SevWarning || items[3].Primary.File != 1 {
		t.Fatalf("unexpected order: %+v %+v %+v", items[0], items[2], items[3])
	}
	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", b.Len())
	}
}

func TestBag_MergeAndFilter(t *testing.T) {
	a, b := NewBag(1), NewBag(1)
	w := NewWarning(MightBeDeprecatedMethod, source.Pos{}, "w")
	e := NewError(LegacyClassname, source.Pos{}, "e")
	a.Add(&w)
	b.Add(&e)
	a.Merge(b)
	if a.Len() != 2 || a.Cap() < 2 {
		t.Fatalf("Merge: len=%d cap=%d", a.Len(), a.Cap())
	}
	a.Filter(func(d *Diagnostic) bool { return d.Severity == SevError })
	if a.Len() != 1 || a.Items()[0].Code != LegacyClassname {
		t.Fatalf("Filter kept %+v", a.Items())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := NewWarning(MightBeDeprecatedMethod, source.Pos{Token: 1}, "w").WithSniff("S")
	r.Report(d)
	r.Report(d)
	r.Report(d.WithSniff("Other"))
	if bag.Len() != 2 {
		t.Fatalf("bag has %d items, want 2", bag.Len())
	}
}

func TestReportBuilder_EmitOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportWarning(BagReporter{Bag: bag}, MightBeDeprecatedMethod, source.Pos{Token: 4}, "msg").
		WithSniff("S").
		WithData("create")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, bag has %d", bag.Len())
	}
	got := bag.Items()[0]
	if got.Sniff != "S" || len(got.Data) != 1 || got.Data[0] != "create" {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
	var nilBuilder *ReportBuilder
	nilBuilder.WithData("x").Emit()
}

type stubThunk struct {
	edits []TokenEdit
	err   error
}

func (s stubThunk) ID() string { return "stub" }

func (s stubThunk) Build(FixBuildContext) (Fix, error) {
	return Fix{Edits: s.edits}, s.err
}

func TestMaterializeFixes(t *testing.T) {
	edit := TokenEdit{Pos: source.Pos{Token: 2}, NewText: "'New'"}
	fixes := []Fix{
		{Title: "ready", Edits: []TokenEdit{edit}},
		{Title: "lazy", Thunk: stubThunk{edits: []TokenEdit{edit}}},
	}
	out, err := MaterializeFixes(FixBuildContext{}, fixes)
	if err != nil {
		t.Fatalf("MaterializeFixes: %v", err)
	}
	if out[1].Title != "lazy" || out[1].ID != "stub" || out[1].Thunk != nil || len(out[1].Edits) != 1 {
		t.Fatalf("lazy fix not resolved: %+v", out[1])
	}

	_, err = MaterializeFixes(FixBuildContext{}, []Fix{{Thunk: stubThunk{}}})
	if !errors.Is(err, ErrNilThunkFix) {
		t.Fatalf("err = %v, want ErrNilThunkFix", err)
	}
	boom := errors.New("boom")
	_, err = MaterializeFixes(FixBuildContext{}, []Fix{{Thunk: stubThunk{err: boom}}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	id := fs.Add("/workspace/Classes/Foo.php.tokens.json", "", token.Stream{
		{Kind: token.String, Content: "create", Line: 4, Column: 17},
		{Kind: token.ConstantEncapsedString, Content: "'Tx_Extbase_Foo'", Line: 4, Column: 24},
	}, 0)
	diags := []*Diagnostic{
		ptr(NewError(LegacyClassname, source.Pos{File: id, Token: 1}, "legacy\nname").
			WithFix("x", TokenEdit{Pos: source.Pos{File: id, Token: 1}, NewText: "'A'"})),
		ptr(NewWarning(MightBeDeprecatedMethod, source.Pos{File: id, Token: 0}, "deprecated")),
	}
	want := "warning mightBeDeprecatedMethod Classes/Foo.php.tokens.json:4:17 deprecated\n" +
		"error legacyClassname Classes/Foo.php.tokens.json:4:24 legacy name [fixable]"
	if got := FormatGoldenDiagnostics(diags, fs, false); got != want {
		t.Fatalf("golden mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func ptr(d Diagnostic) *Diagnostic { return &d }

func TestCodeQualified(t *testing.T) {
	if got := LegacyClassname.Qualified("Typo3Update.LegacyClassnames.InstantiationWithObjectManager"); got != "Typo3Update.LegacyClassnames.InstantiationWithObjectManager.legacyClassname" {
		t.Fatalf("Qualified = %q", got)
	}
	if UnknownCode.ID() != "unknown" || Code("custom").Title() != "custom" {
		t.Fatalf("fallbacks broken")
	}
}

func TestSeverityLabels(t *testing.T) {
	tests := []struct {
		sev          Severity
		label, level string
	}{
		{SevInfo, "INFO", "note"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "note"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.label {
			t.Errorf("String(%d) = %q, want %q", tt.sev, got, tt.label)
		}
		if got := tt.sev.Level(); got != tt.level {
			t.Errorf("Level(%d) = %q, want %q", tt.sev, got, tt.level)
		}
	}
}
