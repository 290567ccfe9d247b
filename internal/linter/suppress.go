package linter

import (
	"strings"
)

// SuppressionType represents the type of suppression comment.
type SuppressionType int

const (
	// SuppressionNone indicates no suppression.
	SuppressionNone SuppressionType = iota

	// SuppressionLine suppresses rules on the current line.
	// Format: # starlint: disable=rule-name
	SuppressionLine

	// SuppressionNextLine suppresses rules on the next line.
	// Format: # starlint: disable-next-line=rule-name
	SuppressionNextLine

	// SuppressionInline suppresses rules on the same line as code.
	// Format: code_here()  # starlint: disable=rule-name
	SuppressionInline
)

// Suppression represents a suppression directive parsed from a comment.
type Suppression struct {
	// Type is the type of suppression (line, next-line, inline).
	Type SuppressionType

	// Rules is the list of rule names to suppress.
	// An empty list means suppress all rules.
	Rules []string

	// Line is the 1-based line number where the suppression appears.
	Line int
}

// SuppressionParser parses suppression comments from source code.
type SuppressionParser struct {
	// suppressions maps line numbers to their suppressions
	suppressions map[int][]Suppression
}

// NewSuppressionParser creates a new parser for the given source content.
func NewSuppressionParser(content []byte) *SuppressionParser {
	parser := &SuppressionParser{
		suppressions: make(map[int][]Suppression),
	}

	for i, line := range strings.Split(string(content), "\n") {
		// Line numbers are 1-based
		lineNum := i + 1
		if supps := parseLineForSuppressions(line, lineNum); len(supps) > 0 {
			parser.suppressions[lineNum] = supps
		}
	}
	return parser
}

// parseLineForSuppressions extracts all suppression directives from a line.
func parseLineForSuppressions(line string, lineNum int) []Suppression {
	commentIdx := strings.Index(line, "#")
	if commentIdx == -1 {
		return nil
	}

	comment := line[commentIdx:]
	if !strings.Contains(comment, "starlint:") {
		return nil
	}

	var suppressions []Suppression

	// disable-next-line must be matched before disable, as the latter is a
	// prefix of the former.
	if rules, ok := parseDirective(comment, "disable-next-line"); ok {
		suppressions = append(suppressions, Suppression{
			Type:  SuppressionNextLine,
			Rules: rules,
			Line:  lineNum,
		})
	} else if rules, ok := parseDirective(comment, "disable"); ok {
		typ := SuppressionLine
		if strings.TrimSpace(line[:commentIdx]) != "" {
			typ = SuppressionInline
		}
		suppressions = append(suppressions, Suppression{
			Type:  typ,
			Rules: rules,
			Line:  lineNum,
		})
	}

	return suppressions
}

// parseDirective extracts the rule list of a "starlint: <directive>=..."
// comment. Both "starlint: disable=" and "starlint:disable=" spellings are
// accepted.
func parseDirective(comment, directive string) ([]string, bool) {
	idx := -1
	for _, prefix := range []string{"starlint: " + directive + "=", "starlint:" + directive + "="} {
		if i := strings.Index(comment, prefix); i != -1 {
			idx = i + len(prefix)
			break
		}
	}
	if idx == -1 {
		return nil, false
	}

	rulesStr := strings.TrimSpace(comment[idx:])
	if spaceIdx := strings.IndexAny(rulesStr, " \t"); spaceIdx != -1 {
		rulesStr = rulesStr[:spaceIdx]
	}
	return parseRuleList(rulesStr), true
}

// parseRuleList parses a comma-separated list of rule names.
// An empty string or "all" means suppress all rules.
func parseRuleList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return []string{} // Empty list means all rules
	}

	parts := strings.Split(s, ",")
	var rules []string
	for _, part := range parts {
		if rl := strings.TrimSpace(part); rl != "" {
			rules = append(rules, rl)
		}
	}
	return rules
}

// IsSuppressed checks if a finding should be suppressed based on
// suppression directives.
func (p *SuppressionParser) IsSuppressed(finding Finding) bool {
	line := finding.Line

	// Check for inline or whole-line suppression on the same line
	for _, supp := range p.suppressions[line] {
		if supp.Type == SuppressionInline || supp.Type == SuppressionLine {
			if matchesSuppressionRules(finding, supp.Rules) {
				return true
			}
		}
	}

	// Check for next-line suppression on the previous line
	if line > 1 {
		for _, supp := range p.suppressions[line-1] {
			if supp.Type == SuppressionNextLine {
				if matchesSuppressionRules(finding, supp.Rules) {
					return true
				}
			}
		}
	}

	return false
}

// matchesSuppressionRules checks if a finding matches the suppression rules.
// An empty rules list means suppress all rules.
func matchesSuppressionRules(finding Finding, rules []string) bool {
	if len(rules) == 0 {
		return true
	}

	for _, rl := range rules {
		if rl == finding.Rule {
			return true
		}
	}

	return false
}

// FilterSuppressed removes suppressed findings from a list.
func FilterSuppressed(findings []Finding, parser *SuppressionParser) []Finding {
	var filtered []Finding
	for _, finding := range findings {
		if !parser.IsSuppressed(finding) {
			filtered = append(filtered, finding)
		}
	}
	return filtered
}
