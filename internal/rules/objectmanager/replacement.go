package objectmanager

import (
	"fmt"
	"strings"

	"typo3update/internal/diag"
)

// TokenForReplacement rebuilds a string literal around a new class name.
// The quote character is taken from raw; double quotes become single quotes
// so backslashes in namespaced names need no escaping.
//
// raw is split on its quote character into at most three parts, so a quote
// inside the old name ends up in the suffix. Such literals are not produced by
// valid class names and are left as they come.
func TokenForReplacement(raw, newName string) string {
	if raw == "" {
		return "'" + newName + "'"
	}
	quote := raw[:1]
	parts := strings.SplitN(raw, quote, 3)
	parts[1] = newName

	if quote == `"` {
		quote = `'`
	}
	return strings.Join(parts, quote)
}

// replacement is the lazy fix attached to a legacy class name diagnostic. It
// carries the literal's original text, so pending fixes never share state.
type replacement struct {
	edit diag.TokenEdit // Pos and OldText set; NewText computed on Build
	name string
}

func (r replacement) ID() string {
	return fmt.Sprintf("%s-%d-%d", diag.LegacyClassname.ID(), r.edit.Pos.File, r.edit.Pos.Token)
}

func (r replacement) Build(diag.FixBuildContext) (diag.Fix, error) {
	edit := r.edit
	edit.NewText = TokenForReplacement(edit.OldText, r.name)
	return diag.Fix{
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		IsPreferred:   true,
		Edits:         []diag.TokenEdit{edit},
	}, nil
}
