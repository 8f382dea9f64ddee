package source

import (
	"path/filepath"
	"testing"

	"typo3update/internal/token"
	"typo3update/internal/tokfile"
)

func sample() token.Stream {
	return token.Stream{
		{Kind: token.String, Content: "get", Line: 3, Column: 17},
		{Kind: token.OpenParenthesis, Content: "(", Line: 3, Column: 20},
	}
}

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a/Foo.php.tokens.json", "", sample(), 0)
	id2 := fs.Add("a/./Foo.php.tokens.json", "", token.Stream{{Kind: token.String, Content: "x"}}, 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", id1, id2)
	}
	latest, ok := fs.GetByPath("a/Foo.php.tokens.json")
	if !ok || latest.ID != id2 {
		t.Fatalf("GetByPath must return the latest version, got %+v", latest)
	}
	if fs.Get(id1).Tokens.Source() != "get(" {
		t.Fatalf("older version must stay reachable")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len() = %d", fs.Len())
	}
	if fs.Get(99) != nil {
		t.Fatalf("Get(unknown) must be nil")
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem", sample())
	if got := fs.Resolve(Pos{File: id, Token: 1}); got != (LineCol{Line: 3, Col: 20}) {
		t.Fatalf("Resolve = %+v", got)
	}
	if got := fs.Resolve(Pos{File: id, Token: 9}); got != (LineCol{}) {
		t.Fatalf("Resolve out of range = %+v", got)
	}
	if fs.Get(id).Flags&FileVirtual == 0 {
		t.Fatalf("AddVirtual must set FileVirtual")
	}
}

func TestFileSetReplace(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem", sample())
	before := fs.Get(id).Hash
	repl := sample().Clone()
	repl[0].Content = "create"
	fs.Replace(id, repl)
	f := fs.Get(id)
	if f.Hash == before {
		t.Fatalf("hash not updated")
	}
	if f.Flags&FileModified == 0 {
		t.Fatalf("FileModified not set")
	}
}

func TestFileSetLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.php"+tokfile.JSONSuffix)
	if err := tokfile.Write(path, &tokfile.Dump{Path: "Classes/Foo.php", Tokens: sample()}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Origin != "Classes/Foo.php" {
		t.Fatalf("Origin = %q", f.Origin)
	}
	if got := f.FormatPath("relative", fs.BaseDir()); got != "Classes/Foo.php" {
		t.Fatalf("FormatPath(relative) = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "Foo.php" {
		t.Fatalf("FormatPath(basename) = %q", got)
	}
}

func TestPosLess(t *testing.T) {
	a := Pos{File: 0, Token: 5}
	b := Pos{File: 1, Token: 0}
	c := Pos{File: 0, Token: 6}
	if !a.Less(b) || !a.Less(c) || b.Less(a) {
		t.Fatalf("Pos ordering broken")
	}
}
