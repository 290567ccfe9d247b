// Package linter runs declarative lint rules over Starlark files and
// aggregates their diagnostics.
package linter

import (
	"github.com/starforge/starlint/internal/rule"
)

// Severity represents the severity level of a lint finding.
// Re-export from rule for convenience.
type Severity = rule.Severity

// Severity constants re-exported from rule.
const (
	SeverityError   = rule.SeverityError
	SeverityWarning = rule.SeverityWarning
	SeverityInfo    = rule.SeverityInfo
	SeverityHint    = rule.SeverityHint
)

// Finding represents a lint diagnostic after descriptor rendering.
type Finding struct {
	// FilePath is the path to the file containing this finding.
	FilePath string

	// Severity is the severity of this finding.
	Severity Severity

	// Message is the rendered message-catalog entry for this finding.
	Message string

	// Line is the 1-based line number where the issue starts.
	Line int

	// Column is the 1-based column number where the issue starts.
	Column int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int

	// Rule is the name of the rule that produced this finding.
	Rule string

	// MessageID is the message-catalog key the finding was rendered from.
	MessageID string

	// Category is the category of the rule.
	Category string
}

// Result represents the outcome of linting one or more files.
type Result struct {
	// Files is the number of files that were linted.
	Files int

	// Findings is the list of all findings.
	Findings []Finding

	// Errors is the list of files that could not be linted.
	Errors []FileError
}

// FileError represents an error that occurred while linting a file.
type FileError struct {
	// Path is the path to the file.
	Path string

	// Err is the error that occurred.
	Err error
}

// HasErrors returns true if any finding has error severity.
func (r *Result) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any finding has warning or error severity.
func (r *Result) HasWarnings() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError || f.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of findings with error severity.
func (r *Result) ErrorCount() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of findings with warning severity.
func (r *Result) WarningCount() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			count++
		}
	}
	return count
}
