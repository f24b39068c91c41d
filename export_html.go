package pignote

import (
	"context"
	"fmt"
	"strings"

	"github.com/cemayhan20/PigNote/internal/assets"
)

// exportHTML writes a standalone page.
func (e *Exporter) exportHTML(ctx context.Context, body, title string, dark bool, outPath string) error {
	var page strings.Builder
	if err := e.templates.Render(&page, assets.KindPage, dark, title, body); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFile(outPath, []byte(page.String())); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}
