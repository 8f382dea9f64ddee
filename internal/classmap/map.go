package classmap

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

type entry struct {
	legacy string
	modern string
}

// Map is an immutable legacy -> modern class name table.
type Map struct {
	entries map[string]entry
}

// New builds a Map. Later duplicates (after folding) overwrite earlier ones in
// sorted key order, so the result does not depend on map iteration.
func New(pairs map[string]string) *Map {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := &Map{entries: make(map[string]entry, len(pairs))}
	for _, legacy := range keys {
		modern := strings.Trim(strings.TrimSpace(pairs[legacy]), `\`)
		name := strings.Trim(strings.TrimSpace(legacy), `\`)
		if name == "" || modern == "" {
			continue
		}
		m.entries[fold(name)] = entry{legacy: name, modern: modern}
	}
	return m
}

func fold(name string) string {
	// Casers may carry state; never share one between goroutines.
	return cases.Fold().String(name)
}

// LegacyReplacement implements sniff.ClassnameChecker.
func (m *Map) LegacyReplacement(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	key := strings.Trim(name, `\`)
	if key == "" {
		return "", false
	}
	e, ok := m.entries[fold(key)]
	if !ok {
		return "", false
	}
	return e.modern, true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Pairs returns the table with the legacy names as originally spelled.
func (m *Map) Pairs() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for _, e := range m.entries {
		out[e.legacy] = e.modern
	}
	return out
}

// Merge returns a new Map with entries of other overriding those of m.
func (m *Map) Merge(other *Map) *Map {
	out := &Map{entries: make(map[string]entry, m.Len()+other.Len())}
	if m != nil {
		for k, e := range m.entries {
			out.entries[k] = e
		}
	}
	if other != nil {
		for k, e := range other.entries {
			out.entries[k] = e
		}
	}
	return out
}
