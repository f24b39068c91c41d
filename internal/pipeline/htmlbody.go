package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractBody returns the children of <body> when content is a whole
// document, that is, it opens with <!DOCTYPE or <html. Anything else is
// returned as is.
func ExtractBody(content string) (string, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if !strings.HasPrefix(head, "<!doctype") && !strings.HasPrefix(head, "<html") {
		return content, nil
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || n.DataAtom != atom.Body {
			continue
		}
		for c := range n.ChildNodes() {
			if err := html.Render(&sb, c); err != nil {
				return "", err
			}
		}
		break
	}
	return sb.String(), nil
}
