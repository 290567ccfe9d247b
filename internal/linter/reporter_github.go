package linter

import (
	"fmt"
	"io"

	"github.com/starforge/starlint/internal/sortutil"
)

// GitHubReporter outputs findings in GitHub Actions annotation format.
// Format: ::warning file={file},line={line},col={col}::{message}
// See: https://docs.github.com/en/actions/using-workflows/workflow-commands-for-github-actions
type GitHubReporter struct{}

// NewGitHubReporter creates a new GitHub Actions reporter.
func NewGitHubReporter() *GitHubReporter {
	return &GitHubReporter{}
}

// Report implements the Reporter interface for GitHub Actions output.
func (r *GitHubReporter) Report(w io.Writer, result *Result) error {
	sortedFindings := make([]Finding, len(result.Findings))
	copy(sortedFindings, result.Findings)
	sortutil.ByLocation(sortedFindings,
		func(f Finding) string { return f.FilePath },
		func(f Finding) int { return f.Line },
		func(f Finding) int { return f.Column },
	)

	for _, finding := range sortedFindings {
		if err := r.reportFinding(w, finding); err != nil {
			return err
		}
	}

	for _, fileErr := range result.Errors {
		if _, err := fmt.Fprintf(w, "::error file=%s,title=starlint::%v\n",
			fileErr.Path, fileErr.Err); err != nil {
			return err
		}
	}

	return nil
}

// reportFinding outputs a single finding in GitHub Actions annotation format.
// Format: ::{level} file={file},line={line},col={col},title={title}::{message}
// The title carries rule.messageID so a suppression target can be read
// straight off the annotation.
func (r *GitHubReporter) reportFinding(w io.Writer, f Finding) error {
	level := r.severityToLevel(f.Severity)

	title := f.Rule
	if f.MessageID != "" {
		title += "." + f.MessageID
	}
	if f.Category != "" {
		if title != "" {
			title += " "
		}
		title += "(" + f.Category + ")"
	}
	if title == "" {
		title = "starlint"
	}

	location := fmt.Sprintf("file=%s,line=%d", f.FilePath, f.Line)
	if f.Column > 0 {
		location += fmt.Sprintf(",col=%d", f.Column)
	}
	if f.EndLine > 0 && f.EndLine != f.Line {
		location += fmt.Sprintf(",endLine=%d", f.EndLine)
	}
	if f.EndColumn > 0 && f.EndColumn != f.Column {
		location += fmt.Sprintf(",endColumn=%d", f.EndColumn)
	}

	_, err := fmt.Fprintf(w, "::%s %s,title=%s::%s\n",
		level, location, title, f.Message)
	return err
}

// severityToLevel converts a Severity to a GitHub Actions annotation level.
func (r *GitHubReporter) severityToLevel(s Severity) string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo, SeverityHint:
		// GitHub Actions only supports error, warning, and notice
		return "notice"
	default:
		return "notice"
	}
}
