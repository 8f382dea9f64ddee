package diag

import (
	"errors"
	"fmt"

	"typo3update/internal/source"
)

// FixKind classifies a fix for UI listings.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "rewrite"
	case FixKindSourceAction:
		return "source"
	}
	return "unknown"
}

// FixApplicability states how confident a producer is that a fix is correct.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TokenEdit replaces the content of one token.
// OldText, when set, must equal the current content for the edit to apply.
type TokenEdit struct {
	Pos     source.Pos
	NewText string
	OldText string
}

// FixBuildContext is handed to thunks when fixes are materialised.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk builds a fix lazily. Thunks carry everything they need; they must
// not depend on state of the sniff that created them.
type FixThunk interface {
	ID() string
	Build(ctx FixBuildContext) (Fix, error)
}

type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	// RequiresAll marks fixes that only make sense applied together with the rest.
	RequiresAll bool
	Edits       []TokenEdit
	Thunk       FixThunk
}

// ErrNilThunkFix is returned when a thunk yields neither edits nor an error.
var ErrNilThunkFix = errors.New("fix thunk produced no edits")

// Resolve expands a lazy fix into concrete edits. Already materialised fixes
// are returned unchanged.
func (f Fix) Resolve(ctx FixBuildContext) (Fix, error) {
	if f.Thunk == nil {
		return f, nil
	}
	built, err := f.Thunk.Build(ctx)
	if err != nil {
		return Fix{}, fmt.Errorf("fix %s: %w", f.Thunk.ID(), err)
	}
	if len(built.Edits) == 0 {
		return Fix{}, fmt.Errorf("fix %s: %w", f.Thunk.ID(), ErrNilThunkFix)
	}
	if built.ID == "" {
		built.ID = f.ID
		if built.ID == "" {
			built.ID = f.Thunk.ID()
		}
	}
	if built.Title == "" {
		built.Title = f.Title
	}
	built.Thunk = nil
	return built, nil
}

// MaterializeFixes resolves every fix in order, stopping at the first error.
func MaterializeFixes(ctx FixBuildContext, fixes []Fix) ([]Fix, error) {
	out := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}
