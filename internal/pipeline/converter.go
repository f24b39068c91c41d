package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown engine names, as accepted by NewHTMLConverter.
const (
	EngineBuiltin  = "builtin"
	EngineGoldmark = "goldmark"
)

var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownEngine  = errors.New("unknown markdown engine")
)

// HTMLConverter turns a Markdown note into an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// NewHTMLConverter returns the converter for engine; "" means builtin.
func NewHTMLConverter(engine string) (HTMLConverter, error) {
	switch engine {
	case "", EngineBuiltin:
		return BuiltinConverter{}, nil
	case EngineGoldmark:
		return NewGoldmarkConverter(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
}

// BuiltinConverter is the note parser of this package.
type BuiltinConverter struct{}

func (BuiltinConverter) ToHTML(ctx context.Context, content string) (string, error) {
	return MarkdownToHTML(ctx, content)
}

// GoldmarkConverter renders CommonMark plus GFM tables, task lists,
// strikethrough and footnotes, with inline-styled code highlighting.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

func NewGoldmarkConverter() *GoldmarkConverter {
	highlight := highlighting.NewHighlighting(
		highlighting.WithStyle("github"),
		highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
	)
	return &GoldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, highlight),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// Unsafe keeps raw <img> tags for ResolveImages.
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)}
}

// ToHTML converts content. goldmark cannot be interrupted, so the
// conversion runs on its own goroutine and is abandoned when ctx ends.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		buf  bytes.Buffer
		err  error
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		err = c.md.Convert([]byte(normalizeLineEndings(content)), &buf)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-done:
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

var (
	_ HTMLConverter = BuiltinConverter{}
	_ HTMLConverter = (*GoldmarkConverter)(nil)
)
