package token

// Set is a small ordered set of kinds.
type Set []Kind

// Has reports whether k is a member of the set.
func (s Set) Has(k Kind) bool {
	for _, m := range s {
		if m == k {
			return true
		}
	}
	return false
}

// With returns a copy of the set extended by extra kinds.
func (s Set) With(extra ...Kind) Set {
	out := make(Set, 0, len(s)+len(extra))
	out = append(out, s...)
	for _, k := range extra {
		if !out.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// FunctionNameKinds are the kinds a tokenizer may assign to the name of a
// called function (PHP_CodeSniffer's Tokens::$functionNameTokens).
var FunctionNameKinds = Set{
	String,
	Eval,
	Exit,
	Include,
	IncludeOnce,
	Require,
	RequireOnce,
	Isset,
	Unset,
	Empty,
	Self,
	Static,
	Parent,
}

// EmptyKinds carry no code.
var EmptyKinds = Set{
	Whitespace,
	Comment,
	DocComment,
}
