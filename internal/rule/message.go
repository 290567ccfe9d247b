package rule

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRE = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// RenderMessage interpolates descriptor data into a message template.
// Placeholders use {{name}} syntax. A placeholder with no corresponding
// datum is an error: every reported violation must resolve to a fully
// filled message.
func RenderMessage(template string, data map[string]string) (string, error) {
	var missing []string
	rendered := placeholderRE.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderRE.FindStringSubmatch(match)[1]
		value, ok := data[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("message template %q: no data for placeholder(s) %s",
			template, strings.Join(missing, ", "))
	}
	return rendered, nil
}
