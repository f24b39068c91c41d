package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	// Every built-in layout must exist and carry the body placeholder.
	for _, kind := range Kinds {
		for _, dark := range []bool{false, true} {
			name := TemplateName(kind, dark)
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				got, err := loader.LoadTemplate(name)
				if err != nil {
					t.Fatalf("LoadTemplate(%q) error = %v", name, err)
				}
				if !strings.Contains(got, "{{.Body}}") {
					t.Errorf("LoadTemplate(%q) has no body placeholder", name)
				}
				if !strings.Contains(got, "{{.Title}}") {
					t.Errorf("LoadTemplate(%q) has no title placeholder", name)
				}
			})
		}
	}

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("nonexistent-xyz")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("../page-light")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_PrintTemplatesCarryBranding(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	for _, dark := range []bool{false, true} {
		name := TemplateName(KindPrint, dark)
		got, err := loader.LoadTemplate(name)
		if err != nil {
			t.Fatalf("LoadTemplate(%q) error = %v", name, err)
		}
		for _, want := range []string{`class="watermark"`, `class="brand-footer"`, `class="print-mask-bottom"`, "{{.BrandIcon}}"} {
			if !strings.Contains(got, want) {
				t.Errorf("%s missing %q", name, want)
			}
		}
	}
}

func TestEmbeddedLoader_LoadIcon(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	data, mime, err := loader.LoadIcon(BrandIconName)
	if err != nil {
		t.Fatalf("LoadIcon() error = %v", err)
	}
	if mime != "image/svg+xml" {
		t.Errorf("LoadIcon() mime = %q, want image/svg+xml", mime)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("LoadIcon() returned non-SVG content")
	}

	if _, _, err := loader.LoadIcon("missing-icon"); !errors.Is(err, ErrIconNotFound) {
		t.Errorf("LoadIcon(missing) error = %v, want ErrIconNotFound", err)
	}
}
