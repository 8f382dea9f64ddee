package runner

import (
	"typo3update/internal/sniff"
	"typo3update/internal/token"
)

// Registry indexes sniffs by the token kinds they registered for.
type Registry struct {
	sniffs []sniff.Sniff
	byKind map[token.Kind][]int // indexes into sniffs
}

// NewRegistry registers sniffs in the given order.
func NewRegistry(sniffs ...sniff.Sniff) *Registry {
	r := &Registry{byKind: make(map[token.Kind][]int)}
	for _, s := range sniffs {
		r.Register(s)
	}
	return r
}

// Register adds s. Kinds listed twice by one sniff dispatch once.
func (r *Registry) Register(s sniff.Sniff) {
	if s == nil {
		return
	}
	idx := len(r.sniffs)
	r.sniffs = append(r.sniffs, s)
	seen := make(map[token.Kind]struct{})
	for _, k := range s.Register() {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		r.byKind[k] = append(r.byKind[k], idx)
	}
}

// For returns the sniffs interested in kind, in registration order.
func (r *Registry) For(kind token.Kind) []sniff.Sniff {
	idxs := r.byKind[kind]
	out := make([]sniff.Sniff, len(idxs))
	for i, idx := range idxs {
		out[i] = r.sniffs[idx]
	}
	return out
}

// Sniffs returns every registered sniff.
func (r *Registry) Sniffs() []sniff.Sniff {
	return r.sniffs
}

// Len returns the number of registered sniffs.
func (r *Registry) Len() int {
	return len(r.sniffs)
}

// Factory creates fresh sniff instances; it is called once per file so that
// no sniff state is shared between files.
type Factory func() []sniff.Sniff
