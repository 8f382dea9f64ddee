package objectmanager

import (
	"testing"

	"typo3update/internal/classmap"
	"typo3update/internal/diag"
	"typo3update/internal/sniff"
	"typo3update/internal/testkit"
	"typo3update/internal/token"
)

var mapping = classmap.New(map[string]string{
	"Tx_Extbase_Foo": `TYPO3\CMS\Extbase\Foo`,
})

// process drives the sniff over every registered token like a host would.
func process(s *Sniff, tokens token.Stream) *diag.Bag {
	bag := diag.NewBag(100)
	f := sniff.NewFile(0, "Test.php", tokens, diag.BagReporter{Bag: bag}).For(s.Code())
	kinds := token.Set(s.Register())
	for pos, tok := range tokens {
		if kinds.Has(tok.Kind) {
			s.Process(f, pos)
		}
	}
	bag.Sort()
	return bag
}

func materialize(t *testing.T, d *diag.Diagnostic) diag.TokenEdit {
	t.Helper()
	fixes, err := diag.MaterializeFixes(diag.FixBuildContext{}, d.Fixes)
	if err != nil {
		t.Fatalf("MaterializeFixes: %v", err)
	}
	if len(fixes) != 1 || len(fixes[0].Edits) != 1 {
		t.Fatalf("want one fix with one edit, got %+v", fixes)
	}
	return fixes[0].Edits[0]
}

func TestGetWithLegacyName(t *testing.T) {
	b := testkit.MethodCall("get", "'Tx_Extbase_Foo'")
	bag := process(New(nil, mapping), b.Stream())

	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", bag.Len(), bag.Items())
	}
	d := bag.Items()[0]
	if d.Severity != diag.SevError || d.Code != diag.LegacyClassname || !d.Fixable() {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if int(d.Primary.Token) != b.Index("arg") {
		t.Fatalf("error at token %d, want literal at %d", d.Primary.Token, b.Index("arg"))
	}
	if d.Message != `Legacy classes are not allowed, found "Tx_Extbase_Foo", use "TYPO3\CMS\Extbase\Foo" instead` {
		t.Fatalf("message = %q", d.Message)
	}
	if len(d.Data) != 2 || d.Data[0] != "Tx_Extbase_Foo" || d.Data[1] != `TYPO3\CMS\Extbase\Foo` {
		t.Fatalf("data = %v", d.Data)
	}
	if d.Sniff != Name {
		t.Fatalf("sniff = %q", d.Sniff)
	}

	edit := materialize(t, d)
	if edit.NewText != `'TYPO3\CMS\Extbase\Foo'` {
		t.Fatalf("replacement = %q", edit.NewText)
	}
	if edit.OldText != "'Tx_Extbase_Foo'" {
		t.Fatalf("remembered original = %q, want the raw literal", edit.OldText)
	}
	if edit.Pos != d.Primary {
		t.Fatalf("edit at %v, diagnostic at %v", edit.Pos, d.Primary)
	}
}

func TestCreateWithLegacyName(t *testing.T) {
	b := testkit.MethodCall("create", "'Tx_Extbase_Foo'")
	bag := process(New(nil, mapping), b.Stream())

	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2", bag.Len())
	}
	w, e := bag.Items()[0], bag.Items()[1]
	if w.Severity != diag.SevWarning || w.Code != diag.MightBeDeprecatedMethod || w.Fixable() {
		t.Fatalf("warning = %+v", w)
	}
	if int(w.Primary.Token) != b.Index("name") {
		t.Fatalf("warning at %d, want call site %d", w.Primary.Token, b.Index("name"))
	}
	if len(w.Data) != 1 || w.Data[0] != "create" {
		t.Fatalf("warning data = %v", w.Data)
	}
	if w.Message != `The "create" method of ObjectManager is no longer supported, please migrate to "get".` {
		t.Fatalf("warning message = %q", w.Message)
	}
	if e.Code != diag.LegacyClassname {
		t.Fatalf("error = %+v", e)
	}
	if got := materialize(t, e).NewText; got != `'TYPO3\CMS\Extbase\Foo'` {
		t.Fatalf("replacement = %q", got)
	}
}

func TestCreateWarnsRegardlessOfClassname(t *testing.T) {
	b := testkit.MethodCall("create", `'Not\A\Legacy\Name'`)
	bag := process(New(nil, mapping), b.Stream())
	if bag.Len() != 1 || bag.Items()[0].Code != diag.MightBeDeprecatedMethod {
		t.Fatalf("want only the deprecation warning, got %+v", bag.Items())
	}
}

func TestGetWithModernName(t *testing.T) {
	b := testkit.MethodCall("get", `'Not\A\Legacy\Name'`)
	if bag := process(New(nil, mapping), b.Stream()); bag.Len() != 0 {
		t.Fatalf("want no diagnostics, got %+v", bag.Items())
	}
}

func TestOtherNamesAreIgnored(t *testing.T) {
	for _, name := range []string{"make", "Get", "CREATE", "getObject", "instantiate"} {
		b := testkit.MethodCall(name, "'Tx_Extbase_Foo'")
		if bag := process(New(nil, mapping), b.Stream()); bag.Len() != 0 {
			t.Fatalf("%s: want no diagnostics, got %+v", name, bag.Items())
		}
	}
}

func TestNoLiteralUntilEnd(t *testing.T) {
	for _, name := range []string{"get", "create"} {
		b := testkit.MethodCall(name, "$className")
		if bag := process(New(nil, mapping), b.Stream()); bag.Len() != 0 {
			t.Fatalf("%s: want no diagnostics without a literal, got %+v", name, bag.Items())
		}
	}
}

func TestNotACallSite(t *testing.T) {
	decl := testkit.NewStream().OpenTag().
		Add(token.Function, "function").WS(" ").Ident("get").Open().Close().
		WS(" ").Add(token.Return, "return").WS(" ").Lit("'Tx_Extbase_Foo'").Semi()
	if bag := process(New(nil, mapping), decl.Stream()); bag.Len() != 0 {
		t.Fatalf("declaration must be ignored, got %+v", bag.Items())
	}
}

func TestInjectedPredicateDecides(t *testing.T) {
	var calls []int
	pred := sniff.CallSiteFunc(func(_ token.Stream, pos int) bool {
		calls = append(calls, pos)
		return false
	})
	b := testkit.MethodCall("create", "'Tx_Extbase_Foo'")
	if bag := process(New(pred, mapping), b.Stream()); bag.Len() != 0 {
		t.Fatalf("predicate said no call, got %+v", bag.Items())
	}
	if len(calls) == 0 {
		t.Fatalf("predicate was never consulted")
	}
}

func TestCheckerReceivesBareName(t *testing.T) {
	var seen []string
	checker := sniff.CheckerFunc(func(name string) (string, bool) {
		seen = append(seen, name)
		return "", false
	})
	b := testkit.MethodCall("get", `"Tx_Extbase_Foo"`)
	process(New(nil, checker), b.Stream())
	if len(seen) != 1 || seen[0] != "Tx_Extbase_Foo" {
		t.Fatalf("checker saw %q", seen)
	}
}

func TestDoubleQuotedLiteralIsNormalised(t *testing.T) {
	b := testkit.MethodCall("get", `"Tx_Extbase_Foo"`)
	bag := process(New(nil, mapping), b.Stream())
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics", bag.Len())
	}
	edit := materialize(t, bag.Items()[0])
	if edit.NewText != `'TYPO3\CMS\Extbase\Foo'` || edit.OldText != `"Tx_Extbase_Foo"` {
		t.Fatalf("edit = %+v", edit)
	}
}

// The forward search is unbounded: a call without a literal picks up the
// literal of the next statement. This is a known false-positive source.
func TestForwardSearchCrossesStatements(t *testing.T) {
	b := testkit.NewStream().OpenTag().
		Var("$objectManager").Arrow().Ident("get").Mark("name").Open().Var("$name").Close().Semi().WS("\n").
		Var("$legacy").WS(" ").Add(token.Equal, "=").WS(" ").Lit("'Tx_Extbase_Foo'").Mark("unrelated").Semi()
	bag := process(New(nil, mapping), b.Stream())
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1", bag.Len())
	}
	if int(bag.Items()[0].Primary.Token) != b.Index("unrelated") {
		t.Fatalf("expected the unrelated literal to be flagged")
	}
}

func TestPendingFixesDoNotShareState(t *testing.T) {
	m := classmap.New(map[string]string{
		"Tx_Extbase_Foo": `TYPO3\CMS\Extbase\Foo`,
		"Tx_Extbase_Bar": `TYPO3\CMS\Extbase\Bar`,
	})
	b := testkit.NewStream().OpenTag().
		Var("$om").Arrow().Ident("get").Open().Lit(`"Tx_Extbase_Foo"`).Close().Semi().WS("\n").
		Var("$om").Arrow().Ident("get").Open().Lit("'Tx_Extbase_Bar'").Close().Semi()
	bag := process(New(nil, m), b.Stream())
	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics", bag.Len())
	}
	first := materialize(t, bag.Items()[0])
	second := materialize(t, bag.Items()[1])
	if first.OldText != `"Tx_Extbase_Foo"` || first.NewText != `'TYPO3\CMS\Extbase\Foo'` {
		t.Fatalf("first fix = %+v", first)
	}
	if second.OldText != "'Tx_Extbase_Bar'" || second.NewText != `'TYPO3\CMS\Extbase\Bar'` {
		t.Fatalf("second fix = %+v", second)
	}
}

func TestNilChecker(t *testing.T) {
	b := testkit.MethodCall("create", "'Tx_Extbase_Foo'")
	bag := process(New(nil, nil), b.Stream())
	if bag.Len() != 1 || bag.Items()[0].Code != diag.MightBeDeprecatedMethod {
		t.Fatalf("without a checker only the warning remains, got %+v", bag.Items())
	}
}

func TestRegister(t *testing.T) {
	got := New(nil, mapping).Register()
	if len(got) != len(token.FunctionNameKinds) {
		t.Fatalf("Register() = %v", got)
	}
	got[0] = token.Variable
	if token.FunctionNameKinds[0] == token.Variable {
		t.Fatalf("Register must not expose the shared set")
	}
}

func TestStripQuotes(t *testing.T) {
	cases := map[string]string{
		"'Foo'":   "Foo",
		`"Foo"`:   "Foo",
		`''Foo''`: "'Foo'",
		"Foo":     "Foo",
		"'":       "",
		"":        "",
	}
	for in, want := range cases {
		if got := stripQuotes(in); got != want {
			t.Fatalf("stripQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}
