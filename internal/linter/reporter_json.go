package linter

import (
	"encoding/json"
	"io"

	"github.com/starforge/starlint/internal/sortutil"
)

// JSONReporter emits the run as a single JSON document for CI consumers.
// The shape follows the finding contract: every finding carries the rule
// name and the message-catalog key it was rendered from, findings are
// grouped per file in location order, and files that failed to parse are
// a top-level error list rather than findings.
type JSONReporter struct{}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

type jsonOutput struct {
	Files   []jsonFile      `json:"files"`
	Errors  []jsonFileError `json:"errors,omitempty"`
	Summary jsonSummary     `json:"summary"`
}

type jsonFile struct {
	Path     string        `json:"path"`
	Findings []jsonFinding `json:"findings"`
}

type jsonFinding struct {
	Rule      string `json:"rule"`
	MessageID string `json:"message_id,omitempty"`
	Category  string `json:"category,omitempty"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
}

// jsonSummary aggregates counts keyed the same way the registry keys
// rules, so CI can gate on a rule or category without re-grouping.
type jsonSummary struct {
	Files      int            `json:"files"`
	Findings   int            `json:"findings"`
	BySeverity map[string]int `json:"by_severity,omitempty"`
	ByRule     map[string]int `json:"by_rule,omitempty"`
	ByCategory map[string]int `json:"by_category,omitempty"`
}

type jsonFileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Report implements the Reporter interface for JSON output.
func (r *JSONReporter) Report(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.buildOutput(result))
}

// buildOutput flattens the result into the output document. Findings are
// sorted by location once up front; grouping the sorted slice by path
// yields files in path order and findings in location order per file.
func (r *JSONReporter) buildOutput(result *Result) jsonOutput {
	ordered := make([]Finding, len(result.Findings))
	copy(ordered, result.Findings)
	sortutil.ByLocation(ordered,
		func(f Finding) string { return f.FilePath },
		func(f Finding) int { return f.Line },
		func(f Finding) int { return f.Column },
	)

	summary := jsonSummary{
		Files:    result.Files,
		Findings: len(ordered),
	}
	if len(ordered) > 0 {
		summary.BySeverity = make(map[string]int)
		summary.ByRule = make(map[string]int)
		summary.ByCategory = make(map[string]int)
	}

	files := make([]jsonFile, 0, len(ordered))
	for _, f := range ordered {
		if len(files) == 0 || files[len(files)-1].Path != f.FilePath {
			files = append(files, jsonFile{Path: f.FilePath})
		}
		file := &files[len(files)-1]
		file.Findings = append(file.Findings, jsonFinding{
			Rule:      f.Rule,
			MessageID: f.MessageID,
			Category:  f.Category,
			Severity:  severityToString(f.Severity),
			Message:   f.Message,
			Line:      f.Line,
			Column:    f.Column,
			EndLine:   f.EndLine,
			EndColumn: f.EndColumn,
		})

		summary.BySeverity[severityToString(f.Severity)]++
		if f.Rule != "" {
			summary.ByRule[f.Rule]++
		}
		if f.Category != "" {
			summary.ByCategory[f.Category]++
		}
	}

	var fileErrors []jsonFileError
	for _, fe := range result.Errors {
		fileErrors = append(fileErrors, jsonFileError{Path: fe.Path, Message: fe.Err.Error()})
	}

	return jsonOutput{Files: files, Errors: fileErrors, Summary: summary}
}

// severityToString converts a Severity to its string representation.
func severityToString(s Severity) string {
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
