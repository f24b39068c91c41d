package assets

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
)

// Kind selects which page layout a document is rendered with.
type Kind string

// Page layouts. Each exists in a light and a dark variant named
// "<kind>-light" and "<kind>-dark".
const (
	KindPage  Kind = "page"  // standalone HTML export
	KindPrint Kind = "print" // HTML handed to the PDF renderer
	KindChunk Kind = "chunk" // HTML embedded in a DOCX archive
)

// Kinds lists every layout a TemplateSet must provide.
var Kinds = []Kind{KindPage, KindPrint, KindChunk}

// BrandIconName is the icon shown in the print footer.
const BrandIconName = "brand"

// DefaultBrand is the watermark and footer text.
const DefaultBrand = "PigNote"

// TemplateName returns the asset name for kind in the given theme.
func TemplateName(kind Kind, dark bool) string {
	if dark {
		return string(kind) + "-dark"
	}
	return string(kind) + "-light"
}

// PageData is the data every layout is executed with.
type PageData struct {
	Title     string
	Body      template.HTML
	Brand     string
	BrandIcon template.URL
}

// TemplateSet holds the parsed layouts and the inlined brand icon.
type TemplateSet struct {
	templates map[string]*template.Template
	brandIcon template.URL
}

// LoadTemplateSet parses every layout and the brand icon from loader.
func LoadTemplateSet(loader AssetLoader) (*TemplateSet, error) {
	ts := &TemplateSet{templates: make(map[string]*template.Template, len(Kinds)*2)}

	for _, kind := range Kinds {
		for _, dark := range []bool{false, true} {
			name := TemplateName(kind, dark)
			src, err := loader.LoadTemplate(name)
			if err != nil {
				return nil, err
			}
			tmpl, err := template.New(name).Parse(src)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
			}
			ts.templates[name] = tmpl
		}
	}

	icon, mime, err := loader.LoadIcon(BrandIconName)
	if err != nil {
		return nil, err
	}
	// #nosec G203 -- icon bytes are base64 encoded, never interpreted
	ts.brandIcon = template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(icon))

	return ts, nil
}

// Render writes the layout for kind to w. body is inserted without escaping.
func (ts *TemplateSet) Render(w io.Writer, kind Kind, dark bool, title, body string) error {
	name := TemplateName(kind, dark)
	tmpl, ok := ts.templates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return tmpl.Execute(w, PageData{
		Title:     title,
		Body:      template.HTML(body), // #nosec G203 -- note bodies are trusted HTML
		Brand:     DefaultBrand,
		BrandIcon: ts.brandIcon,
	})
}
