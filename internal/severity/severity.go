// Package severity provides the severity levels attached to compiler
// diagnostics.
//
// The levels are ordered from least to most severe: Info < Warning < Error.
// Any diagnostic, whatever its level, makes a compilation unclean.
package severity

// Severity indicates how serious a diagnostic is.
type Severity int

const (
	// SeverityError marks a parse, import or type error.
	SeverityError Severity = iota

	// SeverityWarning marks a soft type-checker error such as an unused
	// import or variable.
	SeverityWarning

	// SeverityInfo marks an informational note.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Parse converts a level name back to a Severity. Unknown names yield
// SeverityError and false.
func Parse(name string) (Severity, bool) {
	switch name {
	case "info":
		return SeverityInfo, true
	case "warning":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	default:
		return SeverityError, false
	}
}
