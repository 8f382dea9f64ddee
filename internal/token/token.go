package token

// Token is a single PHP token as reported by the tokenizer.
type Token struct {
	Kind    Kind
	Name    string // tokenizer name as read from the dump; may be empty
	Content string
	Line    int // 1-based, 0 when unknown
	Column  int // 1-based, 0 when unknown
}

// IsEmpty reports whether the token carries no code: whitespace or a comment.
func (t Token) IsEmpty() bool {
	return EmptyKinds.Has(t.Kind)
}

// IsStringLiteral reports whether the token is a quote-delimited literal
// without interpolation.
func (t Token) IsStringLiteral() bool {
	return t.Kind == ConstantEncapsedString
}

// KindName returns the tokenizer name to use when writing the token back out.
func (t Token) KindName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Kind.String()
}
