package linter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestGitHubReporter_WarningAnnotation verifies warning annotation format.
func TestGitHubReporter_WarningAnnotation(t *testing.T) {
	reporter := NewGitHubReporter()
	result := &Result{
		Files: 1,
		Findings: []Finding{
			{
				FilePath:  "test.star",
				Line:      10,
				Column:    5,
				Rule:      "no-reject-calls",
				MessageID: "generic",
				Category:  "functional",
				Severity:  SeverityWarning,
				Message:   "Unexpected call to Promise.reject.",
			},
		},
		Errors: []FileError{},
	}

	var buf bytes.Buffer
	if err := reporter.Report(&buf, result); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	output := buf.String()
	expected := "::warning file=test.star,line=10,col=5,title=no-reject-calls.generic (functional)::Unexpected call to Promise.reject."
	if !strings.Contains(output, expected) {
		t.Errorf("Expected output to contain:\n%s\nGot:\n%s", expected, output)
	}
}

// TestGitHubReporter_SeverityLevels verifies severity to level mapping.
func TestGitHubReporter_SeverityLevels(t *testing.T) {
	tests := []struct {
		severity Severity
		level    string
	}{
		{SeverityError, "::error "},
		{SeverityWarning, "::warning "},
		{SeverityInfo, "::notice "},
		{SeverityHint, "::notice "},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			reporter := NewGitHubReporter()
			result := &Result{
				Files:    1,
				Findings: []Finding{{FilePath: "f.star", Line: 1, Column: 1, Rule: "r", Severity: tt.severity, Message: "m"}},
				Errors:   []FileError{},
			}

			var buf bytes.Buffer
			if err := reporter.Report(&buf, result); err != nil {
				t.Fatalf("Report failed: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.level) {
				t.Errorf("Output %q should start with %q", buf.String(), tt.level)
			}
		})
	}
}

// TestGitHubReporter_FileError verifies file errors become error annotations.
func TestGitHubReporter_FileError(t *testing.T) {
	reporter := NewGitHubReporter()
	result := &Result{
		Files:    1,
		Findings: []Finding{},
		Errors:   []FileError{{Path: "bad.star", Err: errors.New("syntax error")}},
	}

	var buf bytes.Buffer
	if err := reporter.Report(&buf, result); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if !strings.Contains(buf.String(), "::error file=bad.star,title=starlint::syntax error") {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}
