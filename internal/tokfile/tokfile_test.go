package tokfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"typo3update/internal/token"
)

const tokenGetAllSample = `[
  ["T_OPEN_TAG", "<?php\n", 1],
  ["T_VARIABLE", "$objectManager", 2],
  ["T_OBJECT_OPERATOR", "->", 2],
  ["T_STRING", "get", 2],
  "(",
  ["T_CONSTANT_ENCAPSED_STRING", "'Tx_Extbase_Foo'", 2],
  ")",
  ";"
]`

func TestDecodeJSON_TokenGetAllShape(t *testing.T) {
	dump, err := Decode(strings.NewReader(tokenGetAllSample), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s := dump.Tokens
	if s.Len() != 8 {
		t.Fatalf("got %d tokens, want 8", s.Len())
	}
	wantKinds := []token.Kind{
		token.OpenTag, token.Variable, token.ObjectOperator, token.String,
		token.OpenParenthesis, token.ConstantEncapsedString, token.CloseParenthesis, token.Semicolon,
	}
	for i, want := range wantKinds {
		if s[i].Kind != want {
			t.Fatalf("token %d kind = %v, want %v", i, s[i].Kind, want)
		}
	}
	if got := s.Source(); got != "<?php\n$objectManager->get('Tx_Extbase_Foo');" {
		t.Fatalf("Source() = %q", got)
	}
	if s[3].Line != 2 || s[3].Column != 17 {
		t.Fatalf("get position = %d:%d, want 2:17", s[3].Line, s[3].Column)
	}
	if s[4].Line != 2 || s[4].Column != 20 {
		t.Fatalf("( position = %d:%d, want 2:20", s[4].Line, s[4].Column)
	}
}

func TestDecodeJSON_ObjectShape(t *testing.T) {
	in := `{"path": "Classes/Foo.php", "tokens": [
		{"kind": "T_STRING", "content": "create", "line": 7, "column": 3},
		{"kind": "T_WHITESPACE", "content": " "}
	]}`
	dump, err := Decode(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dump.Path != "Classes/Foo.php" {
		t.Fatalf("Path = %q", dump.Path)
	}
	if dump.Tokens[0].Column != 3 || dump.Tokens[1].Column != 9 {
		t.Fatalf("columns = %d, %d; want 3, 9", dump.Tokens[0].Column, dump.Tokens[1].Column)
	}
	if dump.Tokens[1].Kind != token.Whitespace {
		t.Fatalf("kind = %v, want T_WHITESPACE", dump.Tokens[1].Kind)
	}
}

func TestDecode_UnknownKind(t *testing.T) {
	in := `{"tokens": [
		{"kind": "T_STRING", "content": "get"},
		{"kind": "T_NOPE", "content": "x"}
	]}`
	_, err := Decode(strings.NewReader(in), FormatJSON)
	if err == nil {
		t.Fatalf("unknown kind accepted")
	}
	for _, want := range []string{"token 1", `"T_NOPE"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"bad kind":      `[["WHATEVER", "x", 1]]`,
		"short tuple":   `[["T_STRING"]]`,
		"multichar raw": `["->"]`,
		"not json":      `{`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(in), FormatJSON); err == nil {
				t.Fatalf("expected error for %q", in)
			}
		})
	}
}

func TestRoundTrip_PreservesSource(t *testing.T) {
	dump, err := Decode(strings.NewReader(tokenGetAllSample), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for _, format := range []Format{FormatJSON, FormatMsgpack} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, dump, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			back, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if Render(back.Tokens) != Render(dump.Tokens) {
				t.Fatalf("source changed:\n%q\n%q", Render(back.Tokens), Render(dump.Tokens))
			}
			if back.Tokens[5].Kind != token.ConstantEncapsedString {
				t.Fatalf("literal kind lost: %v", back.Tokens[5].Kind)
			}
		})
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.php"+MsgpackSuffix)
	dump := &Dump{Path: "Foo.php", Tokens: token.Stream{
		{Kind: token.String, Content: "get", Line: 1, Column: 1},
		{Kind: token.OpenParenthesis, Content: "("},
	}}
	if err := Write(path, dump); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Path != "Foo.php" || got.Tokens.Source() != "get(" {
		t.Fatalf("Read = %+v", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "Foo.php"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"a/Foo.php.tokens.json": FormatJSON,
		"Foo.TOKMP":             FormatMsgpack,
		"Foo.php":               FormatUnknown,
	}
	for path, want := range cases {
		if got := DetectFormat(path); got != want {
			t.Fatalf("DetectFormat(%q) = %v, want %v", path, got, want)
		}
	}
	if !IsDump("x/Foo.php.tokens.json") || IsDump("x/composer.json") {
		t.Fatalf("IsDump misclassifies")
	}
}
