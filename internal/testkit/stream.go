// Package testkit builds token streams for tests without a PHP tokenizer.
package testkit

import (
	"fmt"

	"typo3update/internal/token"
)

// Builder appends tokens and tracks their line/column the way a tokenizer would.
type Builder struct {
	tokens token.Stream
	marks  map[string]int
	line   int
	col    int
}

// NewStream starts an empty stream at line 1, column 1.
func NewStream() *Builder {
	return &Builder{marks: make(map[string]int), line: 1, col: 1}
}

// Add appends a token of the given kind.
func (b *Builder) Add(kind token.Kind, content string) *Builder {
	b.tokens = append(b.tokens, token.Token{Kind: kind, Content: content, Line: b.line, Column: b.col})
	for _, r := range content {
		if r == '\n' {
			b.line++
			b.col = 1
			continue
		}
		b.col++
	}
	return b
}

// Mark names the last appended token so tests can look its index up.
func (b *Builder) Mark(name string) *Builder {
	b.marks[name] = len(b.tokens) - 1
	return b
}

// Index returns the position of a marked token; it panics on unknown names.
func (b *Builder) Index(name string) int {
	idx, ok := b.marks[name]
	if !ok {
		panic(fmt.Sprintf("testkit: unknown mark %q", name))
	}
	return idx
}

func (b *Builder) OpenTag() *Builder            { return b.Add(token.OpenTag, "<?php\n") }
func (b *Builder) WS(s string) *Builder         { return b.Add(token.Whitespace, s) }
func (b *Builder) Var(name string) *Builder     { return b.Add(token.Variable, name) }
func (b *Builder) Ident(name string) *Builder   { return b.Add(token.String, name) }
func (b *Builder) Lit(quoted string) *Builder   { return b.Add(token.ConstantEncapsedString, quoted) }
func (b *Builder) Arrow() *Builder              { return b.Add(token.ObjectOperator, "->") }
func (b *Builder) Open() *Builder               { return b.Add(token.OpenParenthesis, "(") }
func (b *Builder) Close() *Builder              { return b.Add(token.CloseParenthesis, ")") }
func (b *Builder) Comma() *Builder              { return b.Add(token.Comma, ",") }
func (b *Builder) Semi() *Builder               { return b.Add(token.Semicolon, ";") }
func (b *Builder) Comment(text string) *Builder { return b.Add(token.Comment, text) }

// Stream returns a copy of the built tokens.
func (b *Builder) Stream() token.Stream {
	return b.tokens.Clone()
}

// MethodCall builds `<?php\n$objectManager->method(args...);\n`, marking the
// method name as "name" and the first argument as "arg" when it is a literal.
// Each argument is added as a literal when quoted, otherwise as a variable.
func MethodCall(method string, args ...string) *Builder {
	b := NewStream().OpenTag().Var("$objectManager").Arrow().Ident(method).Mark("name").Open()
	for i, a := range args {
		if i > 0 {
			b.Comma().WS(" ")
		}
		if len(a) > 0 && (a[0] == '\'' || a[0] == '"') {
			b.Lit(a)
			if i == 0 {
				b.Mark("arg")
			}
			continue
		}
		b.Var(a)
	}
	return b.Close().Semi().WS("\n")
}

// CheckStreamInvariants verifies that positions are consistent with contents:
// every token starts where the previous one ended.
func CheckStreamInvariants(s token.Stream) error {
	line, col := 1, 1
	for i, t := range s {
		if t.Line != line || t.Column != col {
			return fmt.Errorf("token %d (%s %q) at %d:%d, want %d:%d", i, t.Kind, t.Content, t.Line, t.Column, line, col)
		}
		for _, r := range t.Content {
			if r == '\n' {
				line++
				col = 1
				continue
			}
			col++
		}
	}
	return nil
}
