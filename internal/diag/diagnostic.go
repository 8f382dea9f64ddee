package diag

import (
	"typo3update/internal/source"
)

type Note struct {
	Pos source.Pos
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	// Sniff names the rule that produced the diagnostic.
	Sniff   string
	Message string
	Primary source.Pos
	// Data holds the values substituted into Message, in order.
	Data  []string
	Notes []Note
	Fixes []Fix
}

// Fixable reports whether the diagnostic offers at least one fix.
func (d *Diagnostic) Fixable() bool {
	return d != nil && len(d.Fixes) > 0
}
