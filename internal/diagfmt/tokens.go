package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"typo3update/internal/token"
)

// TokenOutput is one token of the `tokens --format=json` listing.
type TokenOutput struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens token.Stream) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%4d: %-28s %q at %d:%d\n", i, tok.KindName(), tok.Content, tok.Line, tok.Column); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens token.Stream) error {
	output := make([]TokenOutput, 0, len(tokens))
	for i, tok := range tokens {
		output = append(output, TokenOutput{
			Index:   i,
			Kind:    tok.KindName(),
			Content: tok.Content,
			Line:    tok.Line,
			Column:  tok.Column,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}
