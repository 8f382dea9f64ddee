package diag

// Code is the machine-readable identifier a sniff attaches to a diagnostic,
// e.g. "legacyClassname". Codes are unique within one sniff; the fully
// qualified form is "<sniff>.<code>".
type Code string

const (
	UnknownCode Code = ""

	// ObjectManager instantiation sniff.
	MightBeDeprecatedMethod Code = "mightBeDeprecatedMethod"
	LegacyClassname         Code = "legacyClassname"

	// Harness diagnostics.
	InternalSniffPanic Code = "internal.sniffPanic"
	InternalLimit      Code = "internal.tooManyDiagnostics"
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown problem",
	MightBeDeprecatedMethod: "ObjectManager::create is deprecated",
	LegacyClassname:         "Legacy class name",
	InternalSniffPanic:      "Sniff failed while processing a token",
	InternalLimit:           "Diagnostic limit reached",
}

// ID returns the code as written in reports.
func (c Code) ID() string {
	if c == UnknownCode {
		return "unknown"
	}
	return string(c)
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return string(c)
	}
	return desc
}

// Qualified joins a sniff name and the code: "Typo3Update.X.Y.legacyClassname".
func (c Code) Qualified(sniff string) string {
	if sniff == "" {
		return c.ID()
	}
	return sniff + "." + c.ID()
}

func (c Code) String() string {
	return c.ID()
}
