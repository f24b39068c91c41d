package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Inline span patterns, applied in declaration order.
var (
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)

	// RE2 has no look-around, and a lone asterisk must not sit next to another one.
	italicPattern = regexp2.MustCompile(`(?<!\*)\*([^*]+)\*(?!\*)`, regexp2.None)
)

// ProcessInline rewrites links, inline code, bold and italic spans in a single
// line of Markdown text. Each pass runs once over the output of the previous
// one. The text is not HTML-escaped.
func ProcessInline(text string) string {
	out := linkPattern.ReplaceAllString(text, `<a href="$2">$1</a>`)
	out = inlineCodePattern.ReplaceAllString(out, "<code>$1</code>")
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")

	return replaceItalic(out)
}

// replaceItalic runs the italic pass on each valid UTF-8 run of s and
// copies invalid bytes through untouched. regexp2 decodes its input to
// runes and would turn them into U+FFFD. A span cannot cross an invalid byte.
func replaceItalic(s string) string {
	if utf8.ValidString(s) {
		return italicize(s)
	}

	var sb strings.Builder
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(italicize(s[start:i]))
			sb.WriteByte(s[i])
			start = i + 1
		}
		i += size
	}
	sb.WriteString(italicize(s[start:]))
	return sb.String()
}

func italicize(s string) string {
	if !strings.Contains(s, "*") {
		return s
	}
	// regexp2 only fails on match timeouts, none is configured.
	if replaced, err := italicPattern.Replace(s, "<em>$1</em>", -1, -1); err == nil {
		return replaced
	}
	return s
}
