package options

import "fmt"

// ConfigurationError reports an invalid or unrecognized option value for a
// rule. It is raised once at rule activation; analysis never proceeds with
// partially-validated options.
type ConfigurationError struct {
	// Rule is the name of the rule whose options are invalid.
	Rule string

	// Path is a JSON-pointer-style path to the offending option value
	// ("/" for the whole record).
	Path string

	// Err is the underlying validation failure.
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rule %s: invalid option at %s: %v", e.Rule, e.Path, e.Err)
}

// Unwrap returns the underlying validation failure.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
