package rule

// Severity represents the severity of a diagnostic.
type Severity int

const (
	// SeverityError indicates a blocking issue.
	SeverityError Severity = iota
	// SeverityWarning indicates a non-blocking issue that should be addressed.
	SeverityWarning
	// SeverityInfo indicates informational messages.
	SeverityInfo
	// SeverityHint indicates suggestions for improvement.
	SeverityHint
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}
