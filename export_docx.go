package pignote

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cemayhan20/PigNote/internal/assets"
	"github.com/cemayhan20/PigNote/internal/docx"
)

// exportDOCX writes a Word document that embeds the body as an HTML chunk.
func (e *Exporter) exportDOCX(ctx context.Context, body, title string, dark bool, outPath string) error {
	var chunk bytes.Buffer
	if err := e.templates.Render(&chunk, assets.KindChunk, dark, title, body); err != nil {
		return fmt.Errorf("rendering chunk: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := docx.WriteFile(outPath, docx.Package{
		Chunk:   chunk.Bytes(),
		Creator: assets.DefaultBrand,
		Created: e.now(),
	})
	if err != nil {
		return fmt.Errorf("writing DOCX: %w", err)
	}
	return nil
}
