package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// BlockKind identifies the kind of a Markdown block.
type BlockKind int

// Block kinds recognised by the scanner.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockBulletList
	BlockOrderedList
	BlockQuote
	BlockTable
)

var blockKindNames = map[BlockKind]string{
	BlockParagraph:   "paragraph",
	BlockHeading:     "heading",
	BlockCode:        "code",
	BlockBulletList:  "bullet-list",
	BlockOrderedList: "ordered-list",
	BlockQuote:       "quote",
	BlockTable:       "table",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BlockKind(%d)", int(k))
}

// Block is a single classified run of lines. It lives only until rendered.
//
// Lines holds the item texts for lists and quotes, the raw lines of a code
// block, or a single entry for headings and paragraphs. Tables use Header and
// Rows instead.
type Block struct {
	Kind   BlockKind
	Level  int
	Lines  []string
	Header []string
	Rows   [][]string
}

const fence = "```"

// headingPrefixes is ordered longest first so "## " is never read as "# ".
var headingPrefixes = []string{"###### ", "##### ", "#### ", "### ", "## ", "# "}

// blockScanner yields blocks one at a time from a line index.
type blockScanner struct {
	lines []string
	pos   int
}

func newBlockScanner(text string) *blockScanner {
	// A final newline terminates the last line, it does not open an empty one.
	text = strings.TrimSuffix(normalizeLineEndings(text), "\n")
	if text == "" {
		return &blockScanner{}
	}
	return &blockScanner{lines: strings.Split(text, "\n")}
}

// next returns the next block, or false at end of input. The context is
// checked before every line the scanner consumes.
func (s *blockScanner) next(ctx context.Context) (Block, bool, error) {
	for s.pos < len(s.lines) {
		if err := ctx.Err(); err != nil {
			return Block{}, false, err
		}

		line := strings.TrimSpace(s.lines[s.pos])
		if line == "" {
			s.pos++
			continue
		}

		if isTableRow(line) {
			b, err := s.scanTable(ctx)
			return b, err == nil, err
		}

		if level, text, ok := parseHeading(line); ok {
			s.pos++
			return Block{Kind: BlockHeading, Level: level, Lines: []string{text}}, true, nil
		}

		switch {
		case strings.HasPrefix(line, fence):
			b, err := s.scanCode(ctx)
			return b, err == nil, err
		case isBulletItem(line):
			b, err := s.scanRun(ctx, BlockBulletList, isBulletItem, func(l string) string { return l[2:] })
			return b, err == nil, err
		case isOrderedItem(line):
			b, err := s.scanOrdered(ctx)
			return b, err == nil, err
		case isQuoteLine(line):
			b, err := s.scanRun(ctx, BlockQuote, isQuoteLine, func(l string) string { return l[2:] })
			return b, err == nil, err
		}

		s.pos++
		return Block{Kind: BlockParagraph, Lines: []string{line}}, true, nil
	}
	return Block{}, false, nil
}

// scanTable consumes the header row, an optional separator row and every
// following row that starts and ends with a pipe.
func (s *blockScanner) scanTable(ctx context.Context) (Block, error) {
	b := Block{Kind: BlockTable, Header: splitCells(strings.TrimSpace(s.lines[s.pos]))}
	s.pos++

	if s.pos < len(s.lines) {
		sep := strings.TrimSpace(s.lines[s.pos])
		if strings.HasPrefix(sep, "|") && strings.Contains(sep, "---") {
			s.pos++
		}
	}

	for s.pos < len(s.lines) {
		if err := ctx.Err(); err != nil {
			return Block{}, err
		}
		line := strings.TrimSpace(s.lines[s.pos])
		if !isTableRow(line) {
			break
		}
		b.Rows = append(b.Rows, splitCells(line))
		s.pos++
	}
	return b, nil
}

// scanCode copies raw lines up to the closing fence, which is consumed. An
// unterminated fence runs to end of input.
func (s *blockScanner) scanCode(ctx context.Context) (Block, error) {
	b := Block{Kind: BlockCode}
	s.pos++
	for s.pos < len(s.lines) {
		if err := ctx.Err(); err != nil {
			return Block{}, err
		}
		raw := s.lines[s.pos]
		s.pos++
		if strings.HasPrefix(strings.TrimSpace(raw), fence) {
			break
		}
		b.Lines = append(b.Lines, raw)
	}
	return b, nil
}

// scanRun collects contiguous lines accepted by match.
func (s *blockScanner) scanRun(ctx context.Context, kind BlockKind, match func(string) bool, text func(string) string) (Block, error) {
	b := Block{Kind: kind}
	for s.pos < len(s.lines) {
		if err := ctx.Err(); err != nil {
			return Block{}, err
		}
		line := strings.TrimSpace(s.lines[s.pos])
		if !match(line) {
			break
		}
		b.Lines = append(b.Lines, text(line))
		s.pos++
	}
	return b, nil
}

func (s *blockScanner) scanOrdered(ctx context.Context) (Block, error) {
	return s.scanRun(ctx, BlockOrderedList, isOrderedItem, func(l string) string {
		_, item, _ := strings.Cut(l, ". ")
		return item
	})
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

func isBulletItem(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(line, "> ")
}

// isOrderedItem accepts any line holding a digit and ". ", wherever they sit.
func isOrderedItem(line string) bool {
	return strings.IndexFunc(line, unicode.IsNumber) >= 0 && strings.Contains(line, ". ")
}

func parseHeading(line string) (int, string, bool) {
	for _, prefix := range headingPrefixes {
		if strings.HasPrefix(line, prefix) {
			return len(prefix) - 1, line[len(prefix):], true
		}
	}
	return 0, "", false
}

// splitCells splits a table row on pipes, dropping blank cells.
func splitCells(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		if cell = strings.TrimSpace(cell); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// renderBlock appends the HTML of b to sb.
func renderBlock(sb *strings.Builder, b Block) {
	switch b.Kind {
	case BlockHeading:
		fmt.Fprintf(sb, "<h%d>%s</h%d>\n", b.Level, b.Lines[0], b.Level)
	case BlockCode:
		sb.WriteString("<pre><code>")
		for _, l := range b.Lines {
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
		sb.WriteString("</code></pre>\n")
	case BlockBulletList:
		writeItems(sb, "ul", b.Lines)
	case BlockOrderedList:
		writeItems(sb, "ol", b.Lines)
	case BlockQuote:
		sb.WriteString("<blockquote>\n")
		for _, l := range b.Lines {
			fmt.Fprintf(sb, "<p>%s</p>\n", ProcessInline(l))
		}
		sb.WriteString("</blockquote>\n")
	case BlockTable:
		sb.WriteString("<table>\n<thead>\n<tr>\n")
		for _, cell := range b.Header {
			fmt.Fprintf(sb, "<th>%s</th>\n", cell)
		}
		sb.WriteString("</tr>\n</thead>\n<tbody>\n")
		for _, row := range b.Rows {
			sb.WriteString("<tr>\n")
			for _, cell := range row {
				fmt.Fprintf(sb, "<td>%s</td>\n", ProcessInline(cell))
			}
			sb.WriteString("</tr>\n")
		}
		sb.WriteString("</tbody>\n</table>\n")
	default:
		fmt.Fprintf(sb, "<p>%s</p>\n", ProcessInline(b.Lines[0]))
	}
}

func writeItems(sb *strings.Builder, tag string, items []string) {
	fmt.Fprintf(sb, "<%s>\n", tag)
	for _, item := range items {
		fmt.Fprintf(sb, "<li>%s</li>\n", ProcessInline(item))
	}
	fmt.Fprintf(sb, "</%s>\n", tag)
}

// MarkdownToHTML converts Markdown text to an HTML fragment with the built-in
// line-oriented parser. Returns ctx.Err() and no output when the context ends
// before the last line is scanned.
func MarkdownToHTML(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var sb strings.Builder
	s := newBlockScanner(text)
	for {
		b, ok, err := s.next(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			return sb.String(), nil
		}
		renderBlock(&sb, b)
	}
}
