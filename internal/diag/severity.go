package diag

// Severity mirrors the message types of PHP_CodeSniffer: sniffs report
// warnings and errors, the host may add informational notes on top.
type Severity uint8

const (
	// SevInfo is a host note; sniffs never emit it.
	SevInfo Severity = iota
	// SevWarning is a phpcs warning, e.g. a deprecated ObjectManager call.
	SevWarning
	// SevError is a phpcs error. Fixable legacy class names land here.
	SevError
)

// String returns the upper-case label phpcs prints in its report column.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Level returns the lower-case level used by machine readable reports
// (SARIF result.level). Notes map to "note".
func (s Severity) Level() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "note"
}
