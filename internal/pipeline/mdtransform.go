package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// IsHTML reports whether source is pre-rendered HTML rather than Markdown:
// its first non-whitespace character is '<'.
func IsHTML(source string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(source, unicode.IsSpace), "<")
}
