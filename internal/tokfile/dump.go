package tokfile

import (
	"fmt"
	"strings"

	"typo3update/internal/token"
)

// Dump is one decoded token file.
type Dump struct {
	// Path is the PHP source the tokens were produced from, if the dump says so.
	Path   string
	Tokens token.Stream
}

type record struct {
	Kind    string `json:"kind" msgpack:"kind"`
	Content string `json:"content" msgpack:"content"`
	Line    int    `json:"line,omitempty" msgpack:"line,omitempty"`
	Column  int    `json:"column,omitempty" msgpack:"column,omitempty"`
}

type document struct {
	Path   string   `json:"path,omitempty" msgpack:"path,omitempty"`
	Tokens []record `json:"tokens" msgpack:"tokens"`
}

func toStream(records []record) (token.Stream, error) {
	out := make(token.Stream, 0, len(records))
	for i, r := range records {
		tok, err := classify(r)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		out = append(out, tok)
	}
	fillPositions(out)
	return out, nil
}

func classify(r record) (token.Token, error) {
	name := strings.TrimSpace(r.Kind)
	if name == "" {
		if k, ok := token.LookupChar(r.Content); ok {
			return token.Token{Kind: k, Content: r.Content, Line: r.Line, Column: r.Column}, nil
		}
		if len(r.Content) == 1 {
			return token.Token{Kind: token.Other, Content: r.Content, Line: r.Line, Column: r.Column}, nil
		}
		return token.Token{}, fmt.Errorf("missing kind for %q", r.Content)
	}
	k, ok := token.LookupKind(name)
	if !ok {
		return token.Token{}, fmt.Errorf("unknown token kind %q", name)
	}
	return token.Token{Kind: k, Name: name, Content: r.Content, Line: r.Line, Column: r.Column}, nil
}

func fromStream(path string, s token.Stream) document {
	doc := document{Path: path, Tokens: make([]record, 0, len(s))}
	for _, t := range s {
		r := record{Content: t.Content, Line: t.Line, Column: t.Column}
		if t.Kind == token.Other && t.Name == "" {
			// bare single-character token, written back the same way
			r.Kind = ""
		} else {
			r.Kind = t.KindName()
		}
		doc.Tokens = append(doc.Tokens, r)
	}
	return doc
}

// fillPositions computes Line/Column for tokens that lack them by walking
// the contents. Tokens that already carry a line resynchronise the walk.
func fillPositions(s token.Stream) {
	line, col := 1, 1
	for i := range s {
		if s[i].Line > 0 {
			if s[i].Line != line {
				col = 1
			}
			line = s[i].Line
			if s[i].Column > 0 {
				col = s[i].Column
			}
		}
		if s[i].Line == 0 {
			s[i].Line = line
		}
		if s[i].Column == 0 {
			s[i].Column = col
		}
		for _, r := range s[i].Content {
			if r == '\n' {
				line++
				col = 1
				continue
			}
			col++
		}
	}
}
