package sniff

import "typo3update/internal/token"

// declarationKinds precede a name that is declared or imported, not called.
var declarationKinds = token.Set{
	token.Function,
	token.Fn,
	token.Const,
	token.Use,
	token.New,
	token.Class,
	token.Interface,
	token.Trait,
}

// FunctionCalls is the default CallSitePredicate: the token is a bare
// identifier, the next code token is "(" and the previous code token does not
// introduce a declaration.
type FunctionCalls struct{}

func (FunctionCalls) IsFunctionCall(tokens token.Stream, pos int) bool {
	if !tokens.Valid(pos) || tokens[pos].Kind != token.String {
		return false
	}
	next, ok := tokens.FindNextExcluding(token.EmptyKinds, pos+1)
	if !ok || tokens[next].Kind != token.OpenParenthesis {
		return false
	}
	prev, ok := tokens.FindPrevExcluding(token.EmptyKinds.With(token.BitwiseAnd), pos-1)
	if !ok {
		return true
	}
	return !declarationKinds.Has(tokens[prev].Kind)
}
