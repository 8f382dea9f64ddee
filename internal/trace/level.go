package trace

import (
	"fmt"
	"strings"
)

// Scope is the granularity of an event; coarser scopes have lower values.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // a whole CLI command
	ScopeFile                     // one token file
	ScopeSniff                    // one sniff or fix pass
	ScopeToken                    // one token, very noisy
)

var scopeNames = [...]string{ScopeCommand: "command", ScopeFile: "file", ScopeSniff: "sniff", ScopeToken: "token"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Level controls verbosity: each level admits every scope up to its ceiling.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; a ring keeps command and file events for crash dumps
	LevelPhase        // commands and files
	LevelDetail       // plus sniffs and fixes
	LevelDebug        // plus single tokens
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ceiling is the finest scope a level lets through; 0 admits nothing.
func (l Level) ceiling() Scope {
	switch l {
	case LevelPhase:
		return ScopeFile
	case LevelDetail:
		return ScopeSniff
	case LevelDebug:
		return ScopeToken
	}
	return 0
}

// ShouldEmit reports whether a streamed event of scope passes at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope != 0 && scope <= l.ceiling()
}
