package fix

import (
	"typo3update/internal/diag"
	"typo3update/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

// WithRequiresAll marks fix as applicable only together with all others.
func WithRequiresAll() Option {
	return func(f *diag.Fix) {
		f.RequiresAll = true
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func quickFix(title string, edits []diag.TokenEdit) diag.Fix {
	return diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
}

// ReplaceToken replaces the content of the token at pos with newText.
// expect guards against stale positions; empty disables the check.
func ReplaceToken(title string, pos source.Pos, newText, expect string, opts ...Option) diag.Fix {
	return applyOptions(quickFix(title, []diag.TokenEdit{{
		Pos:     pos,
		NewText: newText,
		OldText: expect,
	}}), opts)
}

// DeleteToken empties the token at pos.
func DeleteToken(title string, pos source.Pos, expect string, opts ...Option) diag.Fix {
	return ReplaceToken(title, pos, "", expect, opts...)
}

// ReplaceTokens replaces several tokens at once. newTexts and expects are
// matched to positions by index; missing expects mean no guard.
func ReplaceTokens(title string, positions []source.Pos, newTexts, expects []string, opts ...Option) diag.Fix {
	edits := make([]diag.TokenEdit, 0, len(positions))
	for i, pos := range positions {
		edit := diag.TokenEdit{Pos: pos}
		if i < len(newTexts) {
			edit.NewText = newTexts[i]
		}
		if i < len(expects) {
			edit.OldText = expects[i]
		}
		edits = append(edits, edit)
	}
	return applyOptions(quickFix(title, edits), opts)
}

// Lazy creates a fix whose edits are produced by thunk when fixes are applied.
func Lazy(title string, thunk diag.FixThunk, opts ...Option) diag.Fix {
	f := quickFix(title, nil)
	f.Thunk = thunk
	return applyOptions(f, opts)
}
