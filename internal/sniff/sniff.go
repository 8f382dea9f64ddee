package sniff

import (
	"typo3update/internal/token"
)

// Sniff is a single rule.
type Sniff interface {
	// Code is the dotted rule name, e.g. "Typo3Update.LegacyClassnames.InstantiationWithObjectManager".
	Code() string
	// Register returns the token kinds Process should be called for.
	Register() []token.Kind
	// Process inspects the token at pos. All output goes through f.
	Process(f *File, pos int)
}

// CallSitePredicate decides whether the identifier at pos is invoked as a function.
type CallSitePredicate interface {
	IsFunctionCall(tokens token.Stream, pos int) bool
}

// ClassnameChecker maps legacy class names to their replacements.
type ClassnameChecker interface {
	// LegacyReplacement returns the modern name for a legacy class name.
	LegacyReplacement(name string) (string, bool)
}

// CallSiteFunc adapts a plain function to CallSitePredicate.
type CallSiteFunc func(tokens token.Stream, pos int) bool

func (f CallSiteFunc) IsFunctionCall(tokens token.Stream, pos int) bool { return f(tokens, pos) }

// CheckerFunc adapts a plain function to ClassnameChecker.
type CheckerFunc func(name string) (string, bool)

func (f CheckerFunc) LegacyReplacement(name string) (string, bool) { return f(name) }
