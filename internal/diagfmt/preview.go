package diagfmt

import (
	"fmt"
	"strings"

	"typo3update/internal/diag"
	"typo3update/internal/source"
	"typo3update/internal/token"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview renders the source lines touched by edit before and
// after the replacement.
func buildFixEditPreview(fs *source.FileSet, edit diag.TokenEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Pos.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Pos.File)
	}
	idx := int(edit.Pos.Token)
	if !file.Tokens.Valid(idx) {
		return fixEditPreview{}, fmt.Errorf("edit token %d out of range", idx)
	}

	first, last := lineBlock(file.Tokens, idx)
	var before, after strings.Builder
	for i := first; i <= last; i++ {
		before.WriteString(file.Tokens[i].Content)
		if i == idx {
			after.WriteString(edit.NewText)
			continue
		}
		after.WriteString(file.Tokens[i].Content)
	}

	return fixEditPreview{
		before: splitPreviewLines(before.String()),
		after:  splitPreviewLines(after.String()),
	}, nil
}

// lineBlock returns the token range of the line holding idx. It starts after
// the previous token containing a line break, so indentation carried by that
// token is not shown.
func lineBlock(s token.Stream, idx int) (int, int) {
	first := idx
	for first > 0 && !strings.Contains(s[first-1].Content, "\n") {
		first--
	}
	last := idx
	for last+1 < len(s) && !strings.Contains(s[last].Content, "\n") {
		last++
	}
	return first, last
}

func splitPreviewLines(text string) []string {
	if text == "" {
		return nil
	}
	// хвостовой перевод строки принадлежит следующему блоку
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
