package token

import "strings"

// Stream is the ordered token sequence of one file.
type Stream []Token

// Len returns the number of tokens.
func (s Stream) Len() int { return len(s) }

// Valid reports whether pos indexes a token.
func (s Stream) Valid(pos int) bool { return pos >= 0 && pos < len(s) }

// At returns the token at pos, or the zero Token when pos is out of range.
func (s Stream) At(pos int) Token {
	if !s.Valid(pos) {
		return Token{}
	}
	return s[pos]
}

// FindNext returns the first position >= start whose kind is in kinds.
// The search is not bounded by statements; it stops only at the end of the
// stream, in which case it returns (-1, false).
func (s Stream) FindNext(kinds Set, start int) (int, bool) {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(s); i++ {
		if kinds.Has(s[i].Kind) {
			return i, true
		}
	}
	return -1, false
}

// FindNextExcluding returns the first position >= start whose kind is NOT in kinds.
func (s Stream) FindNextExcluding(kinds Set, start int) (int, bool) {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(s); i++ {
		if !kinds.Has(s[i].Kind) {
			return i, true
		}
	}
	return -1, false
}

// FindPrevExcluding returns the last position <= start whose kind is NOT in kinds.
func (s Stream) FindPrevExcluding(kinds Set, start int) (int, bool) {
	if start >= len(s) {
		start = len(s) - 1
	}
	for i := start; i >= 0; i-- {
		if !kinds.Has(s[i].Kind) {
			return i, true
		}
	}
	return -1, false
}

// Clone returns an independent copy of the stream.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	out := make(Stream, len(s))
	copy(out, s)
	return out
}

// Source concatenates token contents, reproducing the original file text.
func (s Stream) Source() string {
	var b strings.Builder
	for _, t := range s {
		b.WriteString(t.Content)
	}
	return b.String()
}
