// Package pignote exports notes to PDF, standalone HTML and DOCX.
//
// # Quick Start
//
//	exp, err := pignote.NewExporter(pignote.WithOutputDir("exports"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := exp.Export(ctx, pignote.Request{
//	    Content:  "# Groceries\n\n- eggs\n- **milk**",
//	    Filename: "Groceries",
//	    Format:   pignote.FormatPDF,
//	    BaseDir:  "/notes", // for relative image paths
//	})
//
// # Pipeline
//
//  1. Sources starting with '<' are HTML; a complete document is reduced to
//     its body. Anything else is Markdown, converted by the built-in line
//     parser or by goldmark (WithEngine).
//  2. Relative <img> sources are inlined as data URIs, or rewritten to
//     file:// URLs when unreadable.
//  3. The body is wrapped in a light or dark layout and packaged:
//     HTML is written as is, DOCX embeds it as an altChunk, PDF is printed
//     by a headless Chromium-family browser and its footer cropped away.
//
// # Cancellation
//
// Exporter.Cancel (or Session.Cancel) may be called from any goroutine. It
// cancels the running export's context and kills the renderer's process
// group. Export then removes partial output and returns ErrCanceled. A
// cancellation requested while nothing runs applies to the next export.
//
// # Renderer Discovery
//
// See FindBrowser. Set PIGNOTE_BROWSER_BIN to force a specific executable.
package pignote
