// Package objectmanager detects legacy class names passed to
// ObjectManager::get and ObjectManager::create, and flags create itself as
// deprecated.
package objectmanager

import (
	"fmt"
	"slices"

	"typo3update/internal/diag"
	"typo3update/internal/fix"
	"typo3update/internal/sniff"
	"typo3update/internal/token"
)

// Name is the qualified sniff name used in reports and configuration.
const Name = "Typo3Update.LegacyClassnames.InstantiationWithObjectManager"

const (
	deprecatedCreateMessage = `The "create" method of ObjectManager is no longer supported, please migrate to "get".`
	legacyClassnameMessage  = `Legacy classes are not allowed, found "%s", use "%s" instead`
)

var literalKinds = token.Set{token.ConstantEncapsedString}

// Sniff is stateless between Process calls; everything a fix needs travels
// inside the fix itself.
type Sniff struct {
	calls   sniff.CallSitePredicate
	checker sniff.ClassnameChecker
}

var _ sniff.Sniff = (*Sniff)(nil)

// New creates the sniff. A nil calls predicate defaults to sniff.FunctionCalls.
func New(calls sniff.CallSitePredicate, checker sniff.ClassnameChecker) *Sniff {
	if calls == nil {
		calls = sniff.FunctionCalls{}
	}
	return &Sniff{calls: calls, checker: checker}
}

func (s *Sniff) Code() string { return Name }

// Register returns every kind the tokenizer may give a called function name.
func (s *Sniff) Register() []token.Kind {
	return slices.Clone(token.FunctionNameKinds)
}

// Process inspects a potential get/create call at pos.
func (s *Sniff) Process(f *sniff.File, pos int) {
	if !s.calls.IsFunctionCall(f.Tokens, pos) {
		return
	}

	functionName := f.Tokens.At(pos).Content
	if functionName != "get" && functionName != "create" {
		return
	}

	// Unbounded: may reach a literal of a later statement.
	classnamePos, ok := f.Tokens.FindNext(literalKinds, pos)
	if !ok {
		return
	}

	if functionName == "create" {
		f.AddWarning(pos, deprecatedCreateMessage, diag.MightBeDeprecatedMethod, "create")
	}

	if s.checker == nil {
		return
	}
	raw := f.Tokens[classnamePos].Content
	classname := stripQuotes(raw)
	newName, ok := s.checker.LegacyReplacement(classname)
	if !ok {
		return
	}

	thunk := replacement{
		edit: diag.TokenEdit{Pos: f.Pos(classnamePos), OldText: raw},
		name: newName,
	}
	lazy := fix.Lazy(fmt.Sprintf("Replace %s with %s", classname, newName), thunk, fix.Preferred())
	f.AddFixableError(classnamePos, legacyClassnameMessage, diag.LegacyClassname, lazy, classname, newName)
}

// stripQuotes removes one leading and one trailing quote character.
func stripQuotes(raw string) string {
	if raw != "" && isQuote(raw[0]) {
		raw = raw[1:]
	}
	if raw != "" && isQuote(raw[len(raw)-1]) {
		raw = raw[:len(raw)-1]
	}
	return raw
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}
